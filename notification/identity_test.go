package notification_test

import (
	"testing"

	"github.com/modernice/notify/notification"
)

func TestIdentical(t *testing.T) {
	ch := make(chan int)
	m := map[string]int{}
	s := []int{1, 2, 3}

	tests := []struct {
		name string
		a, b notification.Object
		want bool
	}{
		{"nil", nil, nil, true},
		{"nil and pointer", nil, objectOne, false},
		{"same pointer", objectOne, objectOne, true},
		{"different pointers", objectOne, objectTwo, false},
		{"equal pointees", &testObject{Label: "x"}, &testObject{Label: "x"}, false},
		{"same channel", ch, ch, true},
		{"different channels", ch, make(chan int), false},
		{"same map", m, m, true},
		{"same slice", s, s, true},
		{"subslice", s, s[:2], false},
		{"equal strings", "foo", "foo", true},
		{"different strings", "foo", "bar", false},
		{"different types", 1, int64(1), false},
		{"struct values", testObject{Label: "x"}, testObject{Label: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notification.Identical(tt.a, tt.b); got != tt.want {
				t.Fatalf("Identical(%v, %v) should return %t; got %t", tt.a, tt.b, tt.want, got)
			}
		})
	}
}

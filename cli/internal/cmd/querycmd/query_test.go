package querycmd_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/modernice/notify/cli/internal/clitest"
	"github.com/modernice/notify/cli/internal/cmd/querycmd"
	"github.com/modernice/notify/cli/internal/cmdtest"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
)

var (
	start = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

	records = []journal.Record{
		{ID: uuid.MustParse("5b0e2c4a-7f59-4b8a-9a51-000000000002"), Name: "bar", Time: start.Add(2 * time.Second)},
		{ID: uuid.MustParse("5b0e2c4a-7f59-4b8a-9a51-000000000001"), Name: "foo", Time: start.Add(time.Second), Payload: notification.Payload{"b": 2, "a": "x"}},
		{ID: uuid.MustParse("5b0e2c4a-7f59-4b8a-9a51-000000000003"), Name: "baz", Time: start.Add(3 * time.Second)},
	}

	header = []string{"TIME", "NAME", "ID", "PAYLOAD"}
	rows   = [][]string{
		{"2026-01-02T03:04:06Z", "foo", "5b0e2c4a-7f59-4b8a-9a51-000000000001", "a=x b=2"},
		{"2026-01-02T03:04:07Z", "bar", "5b0e2c4a-7f59-4b8a-9a51-000000000002", ""},
		{"2026-01-02T03:04:08Z", "baz", "5b0e2c4a-7f59-4b8a-9a51-000000000003", ""},
	}
)

func TestCommand(t *testing.T) {
	_, store, f := clitest.Setup()
	if err := store.Insert(context.Background(), records...); err != nil {
		t.Fatalf("insert records: %v", err)
	}

	tests := []struct {
		name string
		args []string
		want [][]string
	}{
		{
			name: "all",
			want: [][]string{header, rows[0], rows[1], rows[2]},
		},
		{
			name: "names",
			args: []string{"foo", "baz"},
			want: [][]string{header, rows[0], rows[2]},
		},
		{
			name: "limit",
			args: []string{"--limit", "2"},
			want: [][]string{header, rows[0], rows[1]},
		},
		{
			name: "unknown name",
			args: []string{"foobar"},
			want: [][]string{header},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmdtest.TableOutput(t, querycmd.New(f), tt.args, tt.want)
		})
	}
}

func TestCommand_since(t *testing.T) {
	_, store, f := clitest.Setup()

	old := journal.FromNotification(notification.New("foo", notification.WithTime(time.Now().Add(-time.Hour))))
	recent := journal.FromNotification(notification.New("foo"))

	if err := store.Insert(context.Background(), old, recent); err != nil {
		t.Fatalf("insert records: %v", err)
	}

	cmdtest.Contains(t, querycmd.New(f), []string{"--since", "1m"}, recent.ID.String())

	out, err := cmdtest.Run(querycmd.New(f), []string{"--since", "1m"})
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if strings.Contains(out, old.ID.String()) {
		t.Fatalf("output should not contain records older than --since; got\n\n%s", out)
	}
}

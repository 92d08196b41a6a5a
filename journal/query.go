package journal

import (
	stdtime "time"

	"github.com/modernice/notify/notification"
	"golang.org/x/exp/slices"
)

// Query filters Records. Zero values don't filter.
type Query struct {
	// Names filters records by name.
	Names []notification.Name

	// After filters records that happened strictly after the given time.
	After stdtime.Time

	// Before filters records that happened strictly before the given time.
	Before stdtime.Time

	// Limit limits the number of returned records.
	Limit int
}

// Test reports whether r matches the filters of q. Limit is not tested.
func Test(q Query, r Record) bool {
	if len(q.Names) > 0 && !slices.Contains(q.Names, r.Name) {
		return false
	}

	if !q.After.IsZero() && !r.Time.After(q.After) {
		return false
	}

	if !q.Before.IsZero() && !r.Time.Before(q.Before) {
		return false
	}

	return true
}

// SortByTime sorts records by time, oldest first.
func SortByTime(records []Record) {
	slices.SortStableFunc(records, func(a, b Record) bool {
		return a.Time.Before(b.Time)
	})
}

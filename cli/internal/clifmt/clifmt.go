// Package clifmt formats notifications and journal records for the terminal.
package clifmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/modernice/notify/notification"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// TimeFormat is the format of times printed by the CLI.
const TimeFormat = time.RFC3339Nano

// Notification formats n as a single colored line.
func Notification(n notification.Notification) string {
	line := fmt.Sprintf(
		"%s %s %s",
		aurora.Gray(12, n.Time.Format(TimeFormat)),
		aurora.Cyan(n.Name),
		aurora.Faint(n.ID),
	)

	if len(n.Payload) > 0 {
		line += " " + Payload(n.Payload)
	}

	return line
}

// Payload formats p as space-separated key=value pairs, sorted by key.
func Payload(p notification.Payload) string {
	keys := maps.Keys(p)
	slices.Sort(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%v", k, p[k])
	}

	return strings.Join(pairs, " ")
}

package cliargs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modernice/notify/notification"
	"github.com/spf13/cobra"
)

// MinimumN returns a cobra.PositionalArgs that requires at least n arguments
// to be passed.
func MinimumN(n int, errmsg string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return errors.New(errmsg)
		}
		return nil
	}
}

// Payload parses "key=value" arguments into a notification.Payload.
func Payload(args []string) (notification.Payload, error) {
	if len(args) == 0 {
		return nil, nil
	}

	p := make(notification.Payload, len(args))
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid payload argument %q: must be of the form key=value", arg)
		}
		p[key] = val
	}

	return p, nil
}

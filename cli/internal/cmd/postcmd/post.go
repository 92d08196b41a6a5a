package postcmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/modernice/notify/cli/internal/cliargs"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/notification"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// New returns the post command.
func New(f *clifactory.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "post <name> [<key>=<value> ...]",
		Short: "Post a notification",
		Long: heredoc.Doc(`
			Post a notification with the given name. The remaining arguments are
			added to the payload of the notification.

			Notifications posted through the CLI have no originator, so they are
			only received by observers without an object filter.
		`),
		Example: heredoc.Doc(`
			Post a "user.created" notification:

			$ notify post user.created id=42 name=bob
		`),
		Args: cliargs.MinimumN(1, "Must provide a notification name."),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := cliargs.Payload(args[1:])
			if err != nil {
				return err
			}

			n := notification.New(notification.Name(args[0]), notification.WithPayload(payload))

			if err := f.Broadcaster().Broadcast(f.Context, n); err != nil {
				return fmt.Errorf("broadcast: %w [name=%v]", err, n.Name)
			}

			f.Logger().Debug("Notification posted.", zap.String("name", string(n.Name)), zap.Stringer("id", n.ID))

			cmd.Print(aurora.Green(heredoc.Docf(`
				Notification posted.

				Name: %v
				ID:   %v
			`, n.Name, n.ID)).String())

			return nil
		},
	}
}

package listencmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/cli/internal/clifmt"
	"github.com/modernice/notify/notification"
	"github.com/modernice/notify/sink"
	"github.com/spf13/cobra"
)

// New returns the listen command.
func New(f *clifactory.Factory) *cobra.Command {
	var cfg struct {
		window int
		count  int
	}

	cmd := &cobra.Command{
		Use:   "listen [<name>]",
		Short: "Print received notifications",
		Long: heredoc.Doc(`
			Subscribe to notifications with the given name and print them. Without
			a name, notifications of every name are printed.

			At most --window notifications are buffered at a time. Notifications
			that arrive while the buffer is full are dropped.
		`),
		Example: heredoc.Doc(`
			Print the next 10 "user.created" notifications:

			$ notify listen user.created --count 10
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name notification.Name
			if len(args) > 0 {
				name = notification.Name(args[0])
			}

			ch, err := sink.NewChan(cfg.window, sink.ChanLogger(f.Logger()))
			if err != nil {
				return err
			}

			notification.NewPublisher(f.Broadcaster(), name, nil).Subscribe(ch)
			defer ch.Cancel()

			for i := 0; cfg.count <= 0 || i < cfg.count; i++ {
				n, err := ch.Next(f.Context)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return fmt.Errorf("receive notification: %w", err)
				}
				cmd.Println(clifmt.Notification(n))
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.window, "window", "w", 10, "Number of notifications to buffer")
	cmd.Flags().IntVarP(&cfg.count, "count", "c", 0, "Exit after receiving n notifications (0 = never)")

	return cmd
}

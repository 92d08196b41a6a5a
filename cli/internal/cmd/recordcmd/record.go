package recordcmd

import (
	"context"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CloseTimeout is the maximum duration for flushing buffered records after
// the command was interrupted.
var CloseTimeout = 10 * time.Second

// New returns the record command.
func New(f *clifactory.Factory) *cobra.Command {
	var cfg struct {
		batch    int
		interval time.Duration
	}

	cmd := &cobra.Command{
		Use:   "record [<name>]",
		Short: "Record notifications into a journal",
		Long: heredoc.Doc(`
			Subscribe to notifications with the given name and insert them into
			the configured journal store until interrupted. Without a name,
			notifications of every name are recorded.

			Notifications are inserted in batches. While a batch is inserted, no
			further notifications are requested and those that arrive in the
			meantime are dropped.
		`),
		Example: heredoc.Doc(`
			Record "user.created" notifications into MongoDB:

			$ notify record user.created --store mongo --mongo-url mongodb://localhost:27017
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name notification.Name
			if len(args) > 0 {
				name = notification.Name(args[0])
			}

			store, err := f.Store()
			if err != nil {
				return err
			}

			logger := f.Logger()

			rec, err := journal.NewRecorder(
				store,
				journal.BatchSize(cfg.batch),
				journal.RecorderLogger(logger),
			)
			if err != nil {
				return err
			}

			notification.NewPublisher(f.Broadcaster(), name, nil).Subscribe(rec)

			if err := rec.Err(); err != nil {
				return err
			}

			cmd.Println(aurora.Green(heredoc.Docf(`
				Recording notifications. Press Ctrl+C to stop.

				Name:  %v
				Store: %v
			`, displayName(name), f.Config.GetString(clifactory.KeyStore))).String())

			g, ctx := errgroup.WithContext(f.Context)

			g.Go(func() error {
				if cfg.interval <= 0 {
					return nil
				}

				ticker := time.NewTicker(cfg.interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return nil
					case <-ticker.C:
						if err := rec.Flush(ctx); err != nil {
							logger.Warn("Failed to flush records.", zap.Error(err))
						}
					}
				}
			})

			g.Go(func() error {
				<-ctx.Done()

				closeCtx, cancel := context.WithTimeout(context.Background(), CloseTimeout)
				defer cancel()

				return rec.Close(closeCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}

			cmd.Println(aurora.Green("Recording stopped.").String())

			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.batch, "batch", "b", 100, "Number of notifications per insert")
	cmd.Flags().DurationVar(&cfg.interval, "flush-interval", 5*time.Second, "Flush incomplete batches at this interval (0 = only on exit)")

	return cmd
}

func displayName(name notification.Name) string {
	if name == "" {
		return "*"
	}
	return string(name)
}

package querycmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/cli/internal/clifmt"
	"github.com/modernice/notify/internal/slice"
	"github.com/modernice/notify/internal/xtime"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
	"github.com/spf13/cobra"
)

// New returns the query command.
func New(f *clifactory.Factory) *cobra.Command {
	var cfg struct {
		limit int
		since time.Duration
	}

	cmd := &cobra.Command{
		Use:   "query [<name> ...]",
		Short: "Print recorded notifications",
		Long: heredoc.Doc(`
			Query the journal store for recorded notifications and print them as
			a table, ordered by time. Without names, records of every name are
			printed.
		`),
		Example: heredoc.Doc(`
			Print the last hour of "user.created" and "user.deleted" records:

			$ notify query user.created user.deleted --since 1h --store postgres
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := f.Store()
			if err != nil {
				return err
			}

			q := journal.Query{
				Names: slice.Map(args, func(name string) notification.Name {
					return notification.Name(name)
				}),
				Limit: cfg.limit,
			}
			if cfg.since > 0 {
				q.After = xtime.Now().Add(-cfg.since)
			}

			records, err := store.Query(f.Context, q)
			if err != nil {
				return fmt.Errorf("query journal: %w", err)
			}

			tabw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 1, ' ', 0)
			fmt.Fprintln(tabw, "TIME\tNAME\tID\tPAYLOAD")
			for _, r := range records {
				fmt.Fprintf(tabw, "%s\t%s\t%s\t%s\n",
					r.Time.Format(clifmt.TimeFormat),
					r.Name,
					r.ID,
					clifmt.Payload(r.Payload),
				)
			}

			return tabw.Flush()
		},
	}

	cmd.Flags().IntVarP(&cfg.limit, "limit", "l", 0, "Maximum number of records (0 = no limit)")
	cmd.Flags().DurationVar(&cfg.since, "since", 0, "Only print records newer than this duration")

	return cmd
}

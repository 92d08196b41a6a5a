package rootcmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/cli/internal/cmd/listencmd"
	"github.com/modernice/notify/cli/internal/cmd/postcmd"
	"github.com/modernice/notify/cli/internal/cmd/querycmd"
	"github.com/modernice/notify/cli/internal/cmd/recordcmd"
	"github.com/spf13/cobra"
)

// New returns the root command.
func New(f *clifactory.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "notify",
		Short:         "notify CLI",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: heredoc.Doc(`
			Post and observe notifications that are distributed through NATS.

			Every flag can also be set through an environment variable with the
			NOTIFY_ prefix, e.g. NOTIFY_NATS_URL or NOTIFY_STORE.
		`),
		Example: heredoc.Doc(`
			$ notify listen user.created --count 10
			$ notify post user.created id=42 name=bob
			$ notify record user.created --store mongo
			$ notify query user.created --limit 5 --store mongo
		`),
	}

	flags := cmd.PersistentFlags()
	flags.String("nats", "", "NATS server URL (defaults to NATS_URL or nats://127.0.0.1:4222)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("store", "memory", "Journal store (memory, mongo, postgres)")
	flags.String("mongo-url", "", "MongoDB connection string")
	flags.String("postgres-url", "", "PostgreSQL connection string")

	bind := map[string]string{
		clifactory.KeyNATSURL:     "nats",
		clifactory.KeyDebug:       "debug",
		clifactory.KeyStore:       "store",
		clifactory.KeyMongoURL:    "mongo-url",
		clifactory.KeyPostgresURL: "postgres-url",
	}
	for key, flag := range bind {
		if err := f.Config.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		postcmd.New(f),
		listencmd.New(f),
		recordcmd.New(f),
		querycmd.New(f),
	)

	return cmd
}

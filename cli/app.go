package cli

import (
	"context"
	"time"

	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/cli/internal/cmd/rootcmd"
	"github.com/spf13/cobra"
)

// An App binds the notify commands to a shared clifactory.Factory. Stores
// and connections opened by the commands stay open until Shutdown.
type App struct {
	factory *clifactory.Factory
	cmd     *cobra.Command
}

// New builds the command tree on top of a Factory configured by opts.
func New(opts ...clifactory.Option) *App {
	f := clifactory.New(opts...)
	return &App{
		factory: f,
		cmd:     rootcmd.New(f),
	}
}

// Command returns the top-level "notify" command, e.g. to redirect its
// output.
func (app *App) Command() *cobra.Command {
	return app.cmd
}

// Execute parses and runs args. Without args, the arguments of the previous
// call are reused, or os.Args[1:] on the first call.
func (app *App) Execute(args ...string) error {
	if len(args) > 0 {
		app.cmd.SetArgs(args)
	}
	return app.cmd.ExecuteContext(app.factory.Context)
}

// Shutdown closes whatever the commands opened and waits at most timeout
// for it. Dependencies passed in as options are left open.
func (app *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return app.factory.Close(ctx)
}

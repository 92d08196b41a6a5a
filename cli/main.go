package cli

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/modernice/notify/cli/internal/clifactory"
)

// Main is the entrypoint for the CLI. Call Main from an actual main function.
func Main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := New(clifactory.Context(ctx))

	err := app.Execute()

	if cerr := app.Shutdown(5 * time.Second); cerr != nil {
		log.Print(aurora.Yellow(cerr))
	}

	if err != nil {
		if errors.Is(err, clifactory.ErrUnknownStore) {
			log.Fatal(aurora.Red("Unknown store. Use one of memory, mongo or postgres."))
		}
		log.Fatal(aurora.Red(err))
	}
}

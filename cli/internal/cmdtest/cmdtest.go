package cmdtest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// Run executes cmd with args and returns its output and error.
func Run(cmd *cobra.Command, args []string) (string, error) {
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

// Error expects cmd to fail with an error that unwraps to want. Error returns
// the command output but does not validate the output.
func Error(t *testing.T, cmd *cobra.Command, args []string, want error) string {
	t.Helper()

	out, err := Run(cmd, args)
	if !errors.Is(err, want) {
		t.Fatalf("Command should fail with %q; got %q", want, err)
	}

	return out
}

// Contains expects cmd to succeed with an output that contains every string
// in want and returns the actual output.
func Contains(t *testing.T, cmd *cobra.Command, args []string, want ...string) string {
	t.Helper()

	out, err := Run(cmd, args)
	if err != nil {
		t.Fatalf("Command failed: %v\n\noutput:\n%v", err, out)
	}

	for _, s := range want {
		if !strings.Contains(out, s) {
			t.Fatalf("Command output should contain %q.\n\ngot:\n%v\n", s, out)
		}
	}

	return out
}

// TableOutput expects cmd to output want as a table and returns the actual
// output.
func TableOutput(t *testing.T, cmd *cobra.Command, args []string, want [][]string) string {
	t.Helper()

	out, err := Run(cmd, args)
	if err != nil {
		t.Fatalf("Command failed: %v\n\noutput:\n%v", err, out)
	}

	var builder strings.Builder
	tabw := tabwriter.NewWriter(&builder, 0, 2, 1, ' ', 0)
	for _, row := range want {
		fmt.Fprintln(tabw, strings.Join(row, "\t"))
	}
	if err := tabw.Flush(); err != nil {
		panic(fmt.Errorf("flush tabwriter: %w", err))
	}

	if wantStr := builder.String(); out != wantStr {
		t.Fatalf("Command has wrong output.\n\nwant:\n%v\n\ngot:\n%v\n", wantStr, out)
	}

	return out
}

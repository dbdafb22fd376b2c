package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/levelkit/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if code := cli.ExitCode(err); code != cli.ExitOK {
		if code != cli.ExitInterrupted {
			fmt.Fprintf(os.Stderr, "levelkit: %v\n", err)
		}
		cancel()
		os.Exit(code)
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Wrap the root pre-run so the level is set before any command logs.
	inner := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if inner != nil {
			return inner(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// Package cli wires the habit store into the habits command line: one-shot
// commands, an interactive shell and the HTTP server.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habittracker/pkg/config"
)

type rootOptions struct {
	configDir string
	env       string
}

// NewRootCommand builds the habits command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "habits",
		Short:         "Track daily habits, streaks and success rates",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "config", "directory holding base.yaml, <env>.yaml and secrets.env")
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetConfigEnv(), "config environment (CONFIG_ENV)")

	root.AddCommand(
		newServeCommand(opts),
		newListCommand(opts),
		newAddCommand(opts),
		newToggleCommand(opts),
		newDeleteCommand(opts),
		newShowCommand(opts),
		newShellCommand(opts),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp opens the app, loads the store, runs fn and waits for its saves.
func withApp(opts *rootOptions, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx, opts)
		if err != nil {
			return err
		}
		defer a.close()

		a.load(ctx)
		return fn(cmd, a, args)
	}
}

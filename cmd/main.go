package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:          "socialmedia",
		Short:        "Social media API: posts, followers and accounts over REST and GraphQL",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")

	cmd.AddCommand(
		newServeCmd(&envFile),
		newMigrateCmd(&envFile),
	)

	// No subcommand runs the server.
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runServe(&envFile)
	}

	return cmd
}

func main() {
	time.Local = time.UTC

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

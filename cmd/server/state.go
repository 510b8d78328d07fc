package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jrsteele09/go-coinbase-oauth/state"
	"github.com/spf13/cobra"
)

const stateSecretVar = "STATE_SECRET"

// newStateCmd mints and checks state tokens with STATE_SECRET, which helps
// when debugging a rejected callback.
func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Mint or check OAuth state tokens",
	}

	var maxAge time.Duration
	check := &cobra.Command{
		Use:   "check TOKEN",
		Short: "Validate a state token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.Validate([]byte(os.Getenv(stateSecretVar)), args[0], time.Now(), maxAge); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	check.Flags().DurationVar(&maxAge, "max-age", state.DefaultMaxAge, "freshness window")

	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Print a fresh state token",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), state.Generate([]byte(os.Getenv(stateSecretVar)), time.Now()))
		},
	}, check)
	return cmd
}

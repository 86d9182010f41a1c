// File path: internal/cli/seed.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/affirmd/internal/app"
)

// NewSeedCommand creates the seed command, which inserts the example
// affirmations without starting the server.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the example affirmations if none exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts)
		},
	}
}

func runSeed(cmd *cobra.Command, opts *RootOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	application, err := app.New(ctx, opts.Config)
	if err != nil {
		return err
	}
	defer application.Close()

	result, err := application.Affirmations().SeedExamples(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message())
	return nil
}

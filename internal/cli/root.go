// File path: internal/cli/root.go
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/affirmd/internal/config"
)

// RootOptions holds the settings shared by every subcommand.
type RootOptions struct {
	Config config.Config
}

// NewRootCommand creates the affirmd command tree. cfg supplies flag defaults,
// normally from config.Load. Running the root without a subcommand serves the
// API.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:           "affirmd",
		Short:         "Affirmation practice service",
		Long:          "Serves the affirmation, daily progress, streak and settings API backed by SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.Config = config.ApplyDefaults(opts.Config)
			return opts.Config.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Config.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	flags.StringVar(&opts.Config.Timezone, "tz", cfg.Timezone, "time zone that decides the current day (IANA name or Local)")
	flags.StringVar(&opts.Config.APIPrefix, "prefix", cfg.APIPrefix, "path prefix for API routes")
	flags.StringVar(&opts.Config.Addr, "addr", cfg.Addr, "listen address")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	return cmd
}

func reachableURL(addr, prefix string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + prefix + "/"
}

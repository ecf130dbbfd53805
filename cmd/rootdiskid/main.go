package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sigreer/rootdiskid/internal/config"
	"github.com/sigreer/rootdiskid/internal/diskid"
	"github.com/sigreer/rootdiskid/internal/output"
	"github.com/sigreer/rootdiskid/internal/version"
)

var (
	cfgFile        string
	logLevel       string
	noVolumeLookup bool
)

var rootCmd = &cobra.Command{
	Use:   "rootdiskid",
	Short: "Print a stable identifier for the disk holding the root filesystem",
	Long: `rootdiskid resolves the device mounted on "/", maps it to its whole
disk and prints the disk's WWID, falling back to its UUID. When neither is
exposed in sysfs and this build includes blkid support, the filesystem UUID
of "/" is used.

An unresolved identifier prints an empty line. Use --strict to exit 1
instead.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")

		resolver, err := newResolver(cmd)
		if err != nil {
			return err
		}

		res := resolver.Resolve()
		output.PrintQuiet(cmd.OutOrStdout(), res)
		if strict && res.Identifier == "" {
			return errors.New("no disk identifier found")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rootdiskid %s\n", version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/rootdiskid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noVolumeLookup, "no-volume-lookup", false, "never fall back to the device tag cache")

	rootCmd.Flags().Bool("strict", false, "exit 1 when no identifier is found")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newResolver loads the config and applies command-line overrides.
func newResolver(cmd *cobra.Command) (*diskid.Resolver, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))

	opts := cfg.ResolverOptions(logger)
	if noVolumeLookup {
		opts.DisableVolumeLookup = true
	}
	return diskid.NewResolver(opts), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

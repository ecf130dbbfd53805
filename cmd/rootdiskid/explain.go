package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigreer/rootdiskid/internal/output"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show each step of the disk identifier resolution",
	Long: `Show the root filesystem device, the disk derived from it, which
attribute the identifier came from and whether the device tag cache
fallback is available.

Examples:
  rootdiskid explain
  rootdiskid explain -o table
  rootdiskid explain --no-volume-lookup`,
	Args: cobra.NoArgs,
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().StringP("output", "o", "json", "Output format: json, table")
}

func runExplain(cmd *cobra.Command, args []string) error {
	outputFmt, _ := cmd.Flags().GetString("output")

	resolver, err := newResolver(cmd)
	if err != nil {
		return err
	}
	res := resolver.Resolve()

	switch outputFmt {
	case "table":
		output.PrintTable(cmd.OutOrStdout(), res)
	case "json":
		if err := output.PrintJSON(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q", outputFmt)
	}
	return nil
}

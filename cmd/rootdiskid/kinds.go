package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigreer/rootdiskid/internal/hwid"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List registered hardware identifier kinds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range hwid.Kinds() {
			fmt.Fprintln(cmd.OutOrStdout(), kind)
		}
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjaus/action/commands"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List command keys and their invokers",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s %s\n", "KEY", "INVOKER")
		for _, c := range commands.All() {
			fmt.Fprintf(out, "%-20s %s\n", c.Key(), c.Invoker())
		}
	},
}

// Package cmd implements the actiond command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bjaus/action/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "actiond",
	Short: "Keyed command dispatcher over NATS",
	Long: `actiond serves automation commands on a NATS subject.

Each request names a command key, a correlation id and a list of
arguments. The command validates the arguments and forwards the call to
its invoker; the reply is a result envelope echoing the correlation id.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		return err
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or /etc/actiond/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(keysCmd)
}

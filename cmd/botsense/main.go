// botsense is the interaction-authenticity service: it scores web sessions
// for bot-like pointer and keyboard behavior.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "botsense",
		Short:         "Interaction-authenticity scoring for web registration flows",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (TOML or YAML)")

	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newScoreCmd(&configPath))
	cmd.AddCommand(newHistoryCmd(&configPath))
	cmd.AddCommand(newConfigCmd())
	return cmd
}

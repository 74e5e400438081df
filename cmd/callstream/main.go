package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "callstream",
		Short:         "Streaming tool-call parsing toolkit",
		Long:          "callstream replays recorded LLM provider streams through the streaming tool-call parser and inspects the tool registry.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./callstream.yaml)")

	cmd.AddCommand(newReplayCommand(&configPath))
	cmd.AddCommand(newToolsCommand(&configPath))
	return cmd
}

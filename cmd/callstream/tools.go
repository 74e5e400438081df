package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newToolsCommand(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools and their schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, registry, err := buildEnvironment(*configPath)
			if err != nil {
				return err
			}

			defs := registry.List()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			}

			nameColor := color.New(color.FgGreen, color.Bold)
			for _, def := range defs {
				nameColor.Fprint(cmd.OutOrStdout(), def.Name)
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", def.Description)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print full definitions as JSON")
	return cmd
}

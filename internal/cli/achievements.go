// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/animetrack/internal/achievement"
)

func newAchievementsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Print the built-in achievement catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			definitions := achievement.DefaultCatalog().Definitions()

			switch format {
			case "table":
				writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(writer, "ID\tCATEGORY\tTHRESHOLD\tTITLE")
				for _, definition := range definitions {
					fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n",
						definition.ID, definition.Category, definition.Threshold, definition.Title)
				}
				return writer.Flush()

			case "yaml":
				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent(2)
				if err := encoder.Encode(map[string]any{"achievements": definitions}); err != nil {
					return fmt.Errorf("encode catalog: %w", err)
				}
				return encoder.Close()

			default:
				return fmt.Errorf("unknown format %q (choose table or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table or yaml")

	return cmd
}

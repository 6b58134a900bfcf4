package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/config"
	"github.com/gravitrone/nebula-dash/internal/ui/components"
)

// TagsCmd returns the `nebula-dash tags` command.
func TagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the tag directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			client := api.NewClient(cfg.APIURL, cfg.APIKey)

			tags, err := client.ListTags()
			if err != nil {
				return fmt.Errorf("list tags: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				fmt.Fprintln(out, "no tags found")
				return nil
			}
			names := make([]string, len(tags))
			width := 0
			for i, t := range tags {
				names[i] = components.SanitizeOneLine(t.Name)
				if len(names[i]) > width {
					width = len(names[i])
				}
			}
			for i, t := range tags {
				color := components.SanitizeOneLine(t.Color)
				if color == "" {
					color = "-"
				}
				fmt.Fprintf(out, "  %-*s  %4d  %s\n", width, names[i], t.UsageCount, color)
			}
			return nil
		},
	}
}

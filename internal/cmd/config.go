package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravitrone/nebula-dash/internal/config"
)

// ConfigCmd returns the `nebula-dash config` command group.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage dashboard configuration",
	}
	cmd.AddCommand(configInitCmd())
	cmd.AddCommand(configShowCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		apiURL string
		apiKey string
		dev    bool
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(config.Path()); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", config.Path())
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("stat config: %w", err)
			}

			cfg := config.Default()
			cfg.APIURL = apiURL
			cfg.APIKey = apiKey
			cfg.DevMode = dev
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config saved to %s\n", config.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", config.DefaultAPIURL, "API root")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key sent as a bearer token")
	cmd.Flags().BoolVar(&dev, "dev", false, "enable developer settings")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:            %s\n", config.Path())
			fmt.Fprintf(out, "api_url:         %s\n", cfg.APIURL)
			fmt.Fprintf(out, "api_key:         %s\n", config.MaskKey(cfg.APIKey))
			fmt.Fprintf(out, "dev_mode:        %t\n", cfg.DevMode)
			fmt.Fprintf(out, "log_path:        %s\n", cfg.LogPath)
			fmt.Fprintf(out, "tag_placeholder: %s\n", cfg.TagPlaceholder)
			return nil
		},
	}
}

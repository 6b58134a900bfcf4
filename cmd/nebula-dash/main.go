package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/nebula-dash/internal/api"
	"github.com/gravitrone/nebula-dash/internal/cmd"
	"github.com/gravitrone/nebula-dash/internal/config"
	"github.com/gravitrone/nebula-dash/internal/diag"
	"github.com/gravitrone/nebula-dash/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nebula-dash",
		Short: "Nebula dashboard",
		Long:  "Terminal dashboard for the Nebula knowledge graph: browse and tag entities, chat, and review open loops.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(cmd.TagsCmd())
	root.AddCommand(cmd.ConfigCmd())
	return root
}

// setup loads config and wires the diagnostic channel and API client.
func setup() (*config.Config, *diag.Channel, *api.Client, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, logErr := diag.NewFileLogger(cfg.LogPath, cfg.DevMode)
	if logErr != nil {
		logger = zap.NewNop()
	}
	ch := diag.New(logger)
	if logErr != nil {
		ch.Warn("startup", "file logging disabled: "+logErr.Error())
	}

	client := api.NewClient(cfg.APIURL, cfg.APIKey)
	ch.Info("startup", "dashboard starting", zap.String("api_url", cfg.APIURL), zap.Bool("dev_mode", cfg.DevMode))
	return cfg, ch, client, nil
}

func runTUI() error {
	cfg, ch, client, err := setup()
	if err != nil {
		return err
	}
	defer ch.Sync()

	p := tea.NewProgram(ui.NewApp(client, cfg, ch), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		ch.Report("startup", err)
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

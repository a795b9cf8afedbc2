// Package main is the entry point for operadoras-tui. Without a subcommand
// it runs the Bubble Tea interface; subcommands query the API directly.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/operadoras-tui/internal/app"
	"github.com/j-veylop/operadoras-tui/internal/config"
	"github.com/j-veylop/operadoras-tui/internal/logger"
	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/ui/tabs/info"
	"github.com/j-veylop/operadoras-tui/internal/ui/tabs/operadoras"
	"github.com/j-veylop/operadoras-tui/internal/ui/tabs/stats"
	"github.com/j-veylop/operadoras-tui/internal/version"
)

// cli holds what the commands share once PersistentPreRunE has run.
type cli struct {
	apiURL   string
	logLevel string
	asJSON   bool

	cfg     *config.Config
	mgr     *services.Manager
	logFile io.Closer
}

func main() {
	root, c := newRootCmd()
	err := root.Execute()
	c.teardown()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The caller must call teardown on the
// returned cli once Execute returns, whether or not it failed: cobra skips
// post-run hooks after an error.
func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:   "operadoras",
		Short: "Operadoras de planos de saúde e suas despesas",
		Long: `operadoras browses the health-plan operators registered with ANS and
their quarterly expenses, served by the operadoras API.

Run without arguments to start the interactive interface.

Configuration is read from the environment or the first .env found in:
  ./.env, ./frontend/.env, ~/.config/operadoras-tui/.env, ../.env, ../../.env

  API_URL        API base URL, without /api (VITE_API_URL is accepted too)
  HTTP_TIMEOUT   request timeout, e.g. 10s (default: none)
  DATABASE_PATH  SQLite file written by export
  LOG_PATH       log file (default ~/.config/operadoras-tui/operadoras.log)
  LOG_LEVEL      debug, info, warn or error`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runTUI,
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API base URL (overrides API_URL)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print subcommand results as JSON")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.despesasCmd(),
		c.statsCmd(),
		c.exportCmd(),
		versionCmd(),
	)
	return root, c
}

// setup loads configuration, opens the log file and builds the manager.
func (c *cli) setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.WithAPIURL(c.apiURL), config.WithLogLevel(c.logLevel))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c.cfg = cfg

	closer, err := logger.Setup(cfg.LogPath, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	c.logFile = closer

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.mgr = mgr

	logger.Debug("configuration loaded", "api_url", cfg.APIURL, "timeout", cfg.HTTPTimeout)
	return nil
}

// teardown closes the manager and the log file. It is safe to call when
// setup never ran or failed halfway.
func (c *cli) teardown() {
	if c.mgr != nil {
		if err := c.mgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", err)
		}
		c.mgr = nil
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
		c.logFile = nil
	}
}

// runTUI mounts the Bubble Tea program with the router installed.
func (c *cli) runTUI(_ *cobra.Command, _ []string) error {
	model := app.NewModel(c.mgr)

	state := model.GetState()
	commands := model.GetCommands()
	model.SetTabs([]app.Tab{
		operadoras.New(state, commands),  // Tab 0: routed list and detail pages
		stats.New(state),                 // Tab 1: aggregate statistics
		info.New(state, commands, c.cfg), // Tab 2: configuration, export and version
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		if _, ok := <-sigChan; ok {
			p.Send(tea.Quit())
		}
	}()

	logger.Info("starting tui", "version", version.GetVersion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Printing the version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}

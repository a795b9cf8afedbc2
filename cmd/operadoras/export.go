package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
)

func (c *cli) exportCmd() *cobra.Command {
	var opts services.ExportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save every operadora into a local SQLite snapshot",
		Long: `export pages through the whole operadoras list and stores it in a SQLite
file (DATABASE_PATH unless --path is given). With --despesas every
operadora's expense history is exported too, which takes one request per
expense page.`,
		Example: `  operadoras export --despesas --notify
  operadoras export --path ./snapshot.db --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ch, _ := c.mgr.Subscribe()

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for event := range ch {
					if p, ok := event.(services.ExportProgressEvent); ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d/%d\n", p.Stage, p.Done, p.Total)
					}
				}
			}()

			run, err := c.mgr.Export(cmd.Context(), opts)
			c.mgr.Unsubscribe(ch)
			wg.Wait()
			if err != nil {
				return err
			}

			path := opts.Path
			if path == "" {
				path = c.cfg.DatabasePath
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, run)
			}
			fmt.Fprintf(out, "Exportadas %s operadoras e %s despesas para %s em %s\n",
				components.FormatCount(run.Operadoras), components.FormatCount(run.Despesas),
				path, run.Duration().Round(1e6))
			if run.TotalDespesas != nil {
				fmt.Fprintf(out, "Total de despesas na API: %s\n", components.FormatBRL(*run.TotalDespesas))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", "", "SQLite file to write (default DATABASE_PATH)")
	cmd.Flags().BoolVar(&opts.Despesas, "despesas", false, "also export every operadora's expenses")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "concurrent API requests")
	cmd.Flags().BoolVar(&opts.Notify, "notify", false, "send a desktop notification when done")
	return cmd
}

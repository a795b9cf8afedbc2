package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		page   int
		search string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operadoras, ten per page",
		Example: `  operadoras list
  operadoras list --search unimed --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.mgr.List().List(cmd.Context(), max(page, 1), search)
			if res.Err != nil {
				return fmt.Errorf("failed to list operadoras: %w", res.Err)
			}
			list := c.mgr.List()
			records, meta := list.Records(), list.Meta()

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, models.PaginatedResponse[models.Operadora]{Data: records, Meta: *meta})
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "Nenhuma operadora encontrada.")
			} else {
				rows := make([][]string, 0, len(records))
				for _, op := range records {
					rows = append(rows, []string{models.FormatCNPJ(op.CNPJ), op.RazaoSocial, op.UF})
				}
				fmt.Fprintln(out, renderTable([]string{"CNPJ", "Razão Social", "UF"}, rows, nil))
			}
			fmt.Fprintln(out, pageFooter(*meta, "operadoras"))
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by razão social or CNPJ")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <cnpj>",
		Short:   "Show one operadora and its latest expenses",
		Example: `  operadoras show 12.345.678/0001-90`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := c.mgr.LoadDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, detail)
			}

			op := detail.Operadora
			fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Render(op.RazaoSocial))
			fields := [][2]string{
				{"CNPJ", models.FormatCNPJ(op.CNPJ)},
				{"Nome fantasia", op.NomeFantasia},
				{"Registro ANS", op.RegistroOperadora},
				{"Modalidade", op.Modalidade},
				{"Endereço", op.Endereco()},
				{"Telefone", op.Phone()},
				{"E-mail", op.EnderecoEletronico},
				{"Representante", op.Representante},
				{"Cargo", op.CargoRepresentante},
				{"Comercialização", op.RegiaoDeComercializacao},
				{"Registro", op.DataRegistroANS},
			}
			for _, f := range fields {
				if strings.TrimSpace(f[1]) != "" {
					fmt.Fprintf(out, "  %-16s %s\n", f[0]+":", f[1])
				}
			}
			fmt.Fprintln(out)
			printDespesas(out, detail.Despesas)
			return nil
		},
	}
}

func (c *cli) despesasCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:     "despesas <cnpj>",
		Short:   "List an operadora's quarterly expenses, twelve quarters per page",
		Example: `  operadoras despesas 12345678000190 --page 2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := c.mgr.LoadDespesas(cmd.Context(), args[0], max(page, 1))
			if err != nil {
				return err
			}
			if c.asJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printDespesas(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate expense statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := c.mgr.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.asJSON {
				return printJSON(out, st)
			}

			fmt.Fprintf(out, "Total de despesas:  %s\n", components.FormatBRL(st.TotalDespesas))
			fmt.Fprintf(out, "Média por registro: %s\n", components.FormatBRL(st.MediaDespesas))
			if st.Cached {
				fmt.Fprintln(out, "(resposta do cache do servidor)")
			}

			if ufs := st.TopUFs(-1); len(ufs) > 0 {
				rows := make([][]string, 0, len(ufs))
				for _, uf := range ufs {
					rows = append(rows, []string{uf.UF, components.FormatBRL(uf.Total), components.FormatPercent(st.UFShare(uf))})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"UF", "Total", "%"}, rows, []int{1, 2}))
			}

			if len(st.TopOperadoras) > 0 {
				rows := make([][]string, 0, len(st.TopOperadoras))
				for i, op := range st.TopOperadoras {
					rows = append(rows, []string{fmt.Sprintf("%d", i+1), op.RazaoSocial, components.FormatBRL(op.TotalDespesas)})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable([]string{"#", "Operadora", "Total"}, rows, []int{2}))
			}
			return nil
		},
	}
}

func printDespesas(out io.Writer, page *models.PaginatedResponse[models.Despesa]) {
	if page == nil || len(page.Data) == 0 {
		fmt.Fprintln(out, "Nenhuma despesa registrada.")
		return
	}

	rows := make([][]string, 0, len(page.Data))
	for _, d := range page.Data {
		rows = append(rows, []string{d.Periodo(), components.FormatDespesa(d)})
	}
	fmt.Fprintln(out, renderTable([]string{"Período", "Despesas"}, rows, []int{1}))
	fmt.Fprintf(out, "%s  %s\n",
		components.RenderSparkline(models.Chronological(page.Data), len(page.Data)),
		pageFooter(page.Meta, "trimestres"))
}

// renderTable renders a bordered table; columns listed in right are
// right-aligned.
func renderTable(headers []string, rows [][]string, right []int) string {
	rightAligned := make(map[int]bool, len(right))
	for _, col := range right {
		rightAligned[col] = true
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			if rightAligned[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return t.Render()
}

func pageFooter(meta models.Meta, noun string) string {
	return fmt.Sprintf("Página %d de %d (%s %s)",
		meta.Page, max(meta.TotalPages, 1), components.FormatCount(meta.Total), noun)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

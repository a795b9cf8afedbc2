package stats

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

// View renders the statistics tab.
func (m *Model) View() string {
	st := m.state.Stats()

	if st.Stats == nil {
		switch {
		case st.Err != nil:
			return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left,
				styles.TitleStyle.Render("Estatísticas"),
				styles.ErrorTextStyle.Render("Não foi possível carregar as estatísticas: "+st.Err.Error()),
				"",
				styles.HelpStyle.Render("Pressione r para tentar novamente"),
			))
		default:
			return m.spinner.Centered("Carregando estatísticas...", m.width, m.height)
		}
	}

	var sections []string
	sections = append(sections, m.renderHeader(st.Stats))
	sections = append(sections, m.renderSummaryCard(st.Stats))
	sections = append(sections, m.renderUFCard(st.Stats))
	sections = append(sections, m.renderTopCard(st.Stats))

	footer := "Atualizado " + components.FormatSince(st.UpdatedAt)
	if st.Loading {
		footer = m.spinner.Prefix(footer)
	}
	if st.Err != nil {
		footer += "  " + styles.ErrorTextStyle.Render("última atualização falhou: "+st.Err.Error())
	}
	sections = append(sections, styles.HelpStyle.Render(footer))

	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	))
	return m.viewport.View()
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

func (m *Model) renderHeader(s *models.StatsResponse) string {
	title := styles.TitleStyle.Render("Estatísticas")
	if s.Cached {
		title += " " + styles.MutedStyle.Render("(cache do servidor)")
	}
	return title
}

func (m *Model) renderSummaryCard(s *models.StatsResponse) string {
	rows := []string{
		styles.CardTitleStyle.Render("Resumo"),
		styles.LabelStyle.Render("Total de despesas:") + " " + styles.AmountStyle.Render(components.FormatBRL(s.TotalDespesas)),
		styles.LabelStyle.Render("Média por registro:") + " " + styles.AmountStyle.Render(components.FormatBRL(s.MediaDespesas)),
		styles.LabelStyle.Render("UFs:") + " " + styles.ValueStyle.Render(components.FormatCount(len(s.DespesasPorUF))),
	}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderUFCard(s *models.StatsResponse) string {
	rows := []string{styles.CardTitleStyle.Render("Despesas por UF")}

	ufs := s.TopUFs(topUFs)
	if len(ufs) == 0 {
		rows = append(rows, styles.MutedStyle.Render("Sem dados"))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	values := make([]float64, len(ufs))
	labels := make([]string, len(ufs))
	for i, uf := range ufs {
		values[i] = uf.Total
		labels[i] = fmt.Sprintf("%s %6s", uf.UF, components.FormatPercent(s.UFShare(uf)))
	}
	rows = append(rows, components.RenderBarChart(values, labels, m.cardWidth()-6, components.FormatBRLCompact))

	if len(s.DespesasPorUF) > len(ufs) {
		rows = append(rows, "", styles.HelpStyle.Render(
			fmt.Sprintf("Mostrando %d de %d UFs", len(ufs), len(s.DespesasPorUF))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderTopCard(s *models.StatsResponse) string {
	rows := []string{styles.CardTitleStyle.Render("Maiores operadoras")}

	if len(s.TopOperadoras) == 0 {
		rows = append(rows, styles.MutedStyle.Render("Sem dados"))
	}

	nameWidth := max(m.cardWidth()-32, 20)
	for i, op := range s.TopOperadoras {
		rows = append(rows, fmt.Sprintf("%d. %-*s %s",
			i+1, nameWidth, components.Truncate(op.RazaoSocial, nameWidth),
			styles.AmountStyle.Width(22).Render(components.FormatBRL(op.TotalDespesas))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

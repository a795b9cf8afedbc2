package info

import (
	"fmt"
	"runtime"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/operadoras-tui/internal/services"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
	"github.com/j-veylop/operadoras-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	var sections []string

	sections = append(sections, m.renderTitle())
	sections = append(sections, m.renderConfigCard())
	sections = append(sections, m.renderExportCard())
	sections = append(sections, m.renderAboutCard())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 2).Render(content))

	return m.viewport.View()
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuração, exportação e versão")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 80)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Configuração"))

	if m.config != nil {
		timeout := "sem limite"
		if m.config.HTTPTimeout > 0 {
			timeout = m.config.HTTPTimeout.String()
		}
		rows = append(rows, renderRow("API", m.config.APIURL))
		rows = append(rows, renderRow("Timeout HTTP", timeout))
		rows = append(rows, renderRow("Banco (export)", m.config.DatabasePath))
		rows = append(rows, renderRow("Log", m.config.LogPath))
		rows = append(rows, renderRow("Nível de log", m.config.LogLevel))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Configuração não carregada"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderRow renders a label/value row.
func renderRow(label, value string) string {
	return styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value)
}

// renderExportCard renders the snapshot export status.
func (m *Model) renderExportCard() string {
	exp := m.state.Export()

	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Exportação"))

	switch {
	case exp.Running:
		rows = append(rows, styles.InfoTextStyle.Render(progressLine(exp.Progress)))
	case exp.Err != nil:
		rows = append(rows, styles.ErrorTextStyle.Render("Falhou: "+exp.Err.Error()))
	}

	if run := exp.LastRun; run != nil {
		rows = append(rows, renderRow("Última", run.FinishedAt.Format("02/01/2006 15:04")))
		rows = append(rows, renderRow("Duração", run.Duration().Round(1e6).String()))
		rows = append(rows, renderRow("Operadoras", components.FormatCount(run.Operadoras)))
		rows = append(rows, renderRow("Despesas", components.FormatCount(run.Despesas)))
		if run.TotalDespesas != nil {
			rows = append(rows, renderRow("Total", components.FormatBRL(*run.TotalDespesas)))
		}
	} else if !exp.Running {
		rows = append(rows, styles.MutedStyle.Render("Nenhuma exportação nesta sessão"))
	}

	rows = append(rows, "")
	rows = append(rows, styles.HelpStyle.Render("e exporta operadoras  •  E inclui despesas  •  c copia o caminho"))

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func progressLine(p services.ExportProgressEvent) string {
	if p.Stage == "" {
		return "Iniciando exportação..."
	}
	if p.Total > 0 {
		return fmt.Sprintf("Exportando %s: %d de %d", p.Stage, p.Done, p.Total)
	}
	return fmt.Sprintf("Exportando %s: %d", p.Stage, p.Done)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	var rows []string
	rows = append(rows, styles.CardTitleStyle.Render("Sobre "+version.Name))

	rows = append(rows, renderRow("Versão", version.GetVersion()))
	rows = append(rows, renderRow("Build", version.GetDate()))
	rows = append(rows, renderRow("Commit", version.GetCommit()))
	rows = append(rows, renderRow("Go", runtime.Version()))
	rows = append(rows, renderRow("Plataforma", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)))

	if meta := m.state.List().Meta(); meta != nil {
		rows = append(rows, "")
		rows = append(rows, fmt.Sprintf("Operadoras na API: %s",
			styles.InfoTextStyle.Render(components.FormatCount(meta.Total))))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

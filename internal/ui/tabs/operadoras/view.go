package operadoras

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/operadoras-tui/internal/app"
	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/ui/components"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

// View renders the page for the current location.
func (m *Model) View() string {
	m.syncRows()
	if m.onList() {
		return m.viewList()
	}
	return m.viewDetail()
}

// syncRows reloads the table when a different page has settled. Results can
// land while the tab is hidden, so this runs on every update and render.
func (m *Model) syncRows() {
	list := m.state.List()
	records := list.Records()

	key := pageKey(list.Meta(), records)
	if key == m.rowsKey {
		return
	}
	m.rowsKey = key

	rows := make([]table.Row, 0, len(records))
	for _, op := range records {
		rows = append(rows, table.Row{models.FormatCNPJ(op.CNPJ), op.RazaoSocial, op.UF})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func pageKey(meta *models.Meta, records []models.Operadora) string {
	var b strings.Builder
	if meta != nil {
		fmt.Fprintf(&b, "%d/%d/%d|", meta.Page, meta.TotalPages, meta.Total)
	}
	for _, op := range records {
		b.WriteString(op.CNPJ)
		b.WriteByte(',')
	}
	return b.String()
}

func (m *Model) viewList() string {
	list := m.state.List()

	var sections []string
	sections = append(sections, styles.TitleStyle.Render("Operadoras"))

	searchBox := styles.BlurredBorderStyle
	if m.search.Focused() {
		searchBox = styles.FocusedBorderStyle
	}
	sections = append(sections, searchBox.Render(m.search.View()))

	if err := list.Err(); err != nil {
		sections = append(sections, styles.ErrorTextStyle.Render("Erro ao carregar operadoras: "+err.Error()))
	}

	switch {
	case list.Meta() == nil && list.Loading():
		sections = append(sections, m.spinner.Labeled("Carregando operadoras..."))
	case len(list.Records()) == 0 && list.Meta() != nil:
		msg := "Nenhuma operadora encontrada"
		if s := m.state.Search(); s != "" {
			msg += fmt.Sprintf(" para %q", s)
		}
		sections = append(sections, styles.MutedStyle.Render(msg))
	default:
		sections = append(sections, m.table.View())
	}

	sections = append(sections, m.renderListFooter())

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m *Model) renderListFooter() string {
	list := m.state.List()

	var parts []string
	if meta := list.Meta(); meta != nil {
		parts = append(parts, pageLabel(*meta, "operadoras"))
	}
	if s := m.state.Search(); s != "" {
		parts = append(parts, fmt.Sprintf("busca: %q", s))
	}
	footer := styles.HelpStyle.Render(strings.Join(parts, "  •  "))
	if list.Loading() {
		footer = m.spinner.Prefix(footer)
	}
	return footer
}

// pageLabel renders "Página 2 de 5 (48 operadoras)".
func pageLabel(meta models.Meta, noun string) string {
	return fmt.Sprintf("Página %d de %d (%s %s)",
		meta.Page, max(meta.TotalPages, 1), components.FormatCount(meta.Total), noun)
}

func (m *Model) viewDetail() string {
	detail := m.state.Detail()

	if detail.Operadora == nil {
		switch {
		case detail.Loading:
			return m.spinner.Centered("Carregando operadora...", m.width, m.height)
		case detail.Err != nil:
			return m.renderDetailError(detail)
		}
	}

	key := detailKey(detail, m.width)
	if key != m.detailKey {
		m.detailKey = key
		m.viewport.SetContent(m.renderDetail(detail))
	}

	footer := styles.HelpStyle.Render("esc voltar  •  n/p despesas  •  c copiar CNPJ")
	if detail.Loading {
		footer = m.spinner.Prefix(footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func detailKey(d app.DetailState, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%v", d.CNPJ, width, d.Err)
	if d.Despesas != nil {
		fmt.Fprintf(&b, "|%d|%d", d.Despesas.Meta.Page, len(d.Despesas.Data))
	}
	if d.Operadora != nil {
		b.WriteString("|op")
	}
	return b.String()
}

func (m *Model) renderDetailError(d app.DetailState) string {
	title := styles.TitleStyle.Render(models.FormatCNPJ(d.CNPJ))
	body := styles.ErrorTextStyle.Render("Não foi possível carregar a operadora: " + d.Err.Error())
	hint := styles.HelpStyle.Render("r tentar novamente  •  esc voltar")
	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint),
	)
}

func (m *Model) renderDetail(d app.DetailState) string {
	var sections []string

	if op := d.Operadora; op != nil {
		sections = append(sections, styles.TitleStyle.Render(op.RazaoSocial))
		sections = append(sections, m.renderOperadoraCard(op))
	}

	sections = append(sections, m.renderDespesasCard(d))

	if d.Err != nil {
		sections = append(sections, styles.ErrorTextStyle.Render("Erro: "+d.Err.Error()))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 100)
}

func (m *Model) renderOperadoraCard(op *models.Operadora) string {
	rows := []string{styles.CardTitleStyle.Render("Cadastro")}

	add := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		rows = append(rows, styles.LabelStyle.Render(label+":")+" "+styles.ValueStyle.Render(value))
	}

	add("CNPJ", models.FormatCNPJ(op.CNPJ))
	if op.NomeFantasia != "" && op.NomeFantasia != op.RazaoSocial {
		add("Nome fantasia", op.NomeFantasia)
	}
	add("Registro ANS", op.RegistroOperadora)
	add("Modalidade", op.Modalidade)
	add("UF", op.UF)
	add("Endereço", op.Endereco())
	add("Telefone", op.Phone())
	if op.Fax != "" {
		add("Fax", op.Fax)
	}
	add("E-mail", op.EnderecoEletronico)
	rep := op.Representante
	if op.CargoRepresentante != "" && rep != "" {
		rep += " (" + op.CargoRepresentante + ")"
	}
	add("Representante", rep)
	add("Comercialização", op.RegiaoDeComercializacao)
	if t := op.RegisteredAt(); !t.IsZero() {
		add("Registrada em", t.Format("02/01/2006"))
	} else {
		add("Registrada em", op.DataRegistroANS)
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderDespesasCard(d app.DetailState) string {
	rows := []string{styles.CardTitleStyle.Render("Despesas por trimestre")}

	page := d.Despesas
	switch {
	case page == nil && d.Loading:
		rows = append(rows, m.spinner.Labeled("Carregando despesas..."))
	case page == nil || len(page.Data) == 0:
		rows = append(rows, styles.MutedStyle.Render("Nenhuma despesa registrada"))
	default:
		for _, desp := range page.Data {
			rows = append(rows, fmt.Sprintf("%-10s %s",
				desp.Periodo(), styles.AmountStyle.Width(22).Render(components.FormatDespesa(desp))))
		}
		rows = append(rows, "")
		rows = append(rows, components.RenderDespesasChart(page.Data, m.cardWidth()-16, 8))
		rows = append(rows, "")
		rows = append(rows, styles.HelpStyle.Render(pageLabel(page.Meta, "trimestres")))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/operadoras-tui/internal/models"
	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

const noData = "Sem dados"

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render(noData)
	}

	// Ensure minimum dimensions
	width = max(width, 20)
	height = max(height, 3)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.DarkCyan),
	)
}

// RenderDespesasChart plots a page of expenses oldest to newest. Values are
// scaled to millions so the axis labels stay short.
func RenderDespesasChart(despesas []models.Despesa, width, height int) string {
	if len(despesas) == 0 {
		return styles.HelpStyle.Render(noData)
	}
	if len(despesas) == 1 {
		d := despesas[0]
		return styles.HelpStyle.Render(fmt.Sprintf("%s: %s", d.Periodo(), FormatDespesa(d)))
	}

	values := models.Chronological(despesas)
	for i := range values {
		values[i] /= 1e6
	}

	oldest := despesas[len(despesas)-1].Periodo()
	newest := despesas[0].Periodo()
	caption := fmt.Sprintf("Despesas em R$ milhões, %s a %s", oldest, newest)

	return RenderLineChart(values, width, height, caption)
}

// RenderBarChart creates a simple horizontal bar chart. format renders the
// value shown after each bar.
func RenderBarChart(values []float64, labels []string, width int, format func(float64) string) string {
	if len(values) == 0 {
		return ""
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.1f", v) }
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := max(width-maxLabelLen-18, 10)
	barStyle := lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := barStyle.Render(strings.Repeat("█", barLen))

		lines = append(lines, fmt.Sprintf("%*s │%s %s", maxLabelLen, label, bar, format(v)))
	}

	return strings.Join(lines, "\n")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sparkChars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

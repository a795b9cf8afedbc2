package components

import (
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/j-veylop/operadoras-tui/internal/models"
)

// FormatBRL renders an amount in Brazilian notation, e.g. "R$ 1.234.567,89".
func FormatBRL(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return "R$ " + humanize.FormatFloat("#.###,##", v)
}

// FormatBRLCompact renders large amounts with a short scale suffix, e.g.
// "R$ 1,2 bi". Amounts under a thousand use FormatBRL.
func FormatBRLCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	abs := math.Abs(v)
	scales := []struct {
		div    float64
		suffix string
	}{
		{1e12, "tri"},
		{1e9, "bi"},
		{1e6, "mi"},
		{1e3, "mil"},
	}
	for _, s := range scales {
		if abs >= s.div {
			return "R$ " + humanize.FormatFloat("#.###,#", v/s.div) + " " + s.suffix
		}
	}
	return FormatBRL(v)
}

// FormatDespesa renders a quarter's value, or a dash when it is missing.
func FormatDespesa(d models.Despesa) string {
	if d.ValorDespesas == nil {
		return "-"
	}
	return FormatBRL(*d.ValorDespesas)
}

// FormatCount renders an integer with '.' thousands separators.
func FormatCount(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// FormatPercent renders a 0..1 share as a percentage with one decimal.
func FormatPercent(share float64) string {
	return humanize.FormatFloat("#.###,#", share*100) + "%"
}

// FormatSince renders how long ago t was, or "nunca" for the zero time.
func FormatSince(t time.Time) string {
	if t.IsZero() {
		return "nunca"
	}
	return humanize.Time(t)
}

// Truncate shortens s to width runes, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(strings.TrimSpace(s))
	if len(r) <= width {
		return string(r)
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

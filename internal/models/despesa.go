package models

import "fmt"

// Despesa is the total expense an operadora reported for one quarter.
type Despesa struct {
	// ValorDespesas is nil when the source had no value for the quarter.
	ValorDespesas *float64 `json:"valor_despesas"`

	Ano       int `json:"ano"`
	Trimestre int `json:"trimestre"`
}

// Valor returns the expense amount, or 0 when it is missing.
func (d Despesa) Valor() float64 {
	if d.ValorDespesas == nil {
		return 0
	}
	return *d.ValorDespesas
}

// Periodo returns a short label such as "2023 T4".
func (d Despesa) Periodo() string {
	return fmt.Sprintf("%d T%d", d.Ano, d.Trimestre)
}

// ValidQuarter reports whether Trimestre is in 1..4.
func (d Despesa) ValidQuarter() bool {
	return d.Trimestre >= 1 && d.Trimestre <= 4
}

// Chronological returns the expense values oldest first. The API sorts pages
// newest first, so the order is reversed for charting.
func Chronological(despesas []Despesa) []float64 {
	values := make([]float64, len(despesas))
	for i, d := range despesas {
		values[len(despesas)-1-i] = d.Valor()
	}
	return values
}

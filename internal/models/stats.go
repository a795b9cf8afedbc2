package models

import "sort"

// EstatisticaUF is the expense total of one federative unit.
type EstatisticaUF struct {
	UF    string  `json:"uf"`
	Total float64 `json:"total"`
}

// TopOperadora is one entry of the top-5 expense ranking.
type TopOperadora struct {
	RazaoSocial   string  `json:"razao_social"`
	TotalDespesas float64 `json:"total_despesas"`
}

// StatsResponse is the aggregate view computed by the server.
type StatsResponse struct {
	DespesasPorUF []EstatisticaUF `json:"despesas_por_uf"`
	TopOperadoras []TopOperadora  `json:"top_5_operadoras"`
	TotalDespesas float64         `json:"total_despesas"`
	MediaDespesas float64         `json:"media_despesas"`

	// Cached reports whether the server answered from its statistics cache.
	Cached bool `json:"cache"`
}

// TopUFs returns up to n UF totals, largest first. The receiver is not modified.
func (s *StatsResponse) TopUFs(n int) []EstatisticaUF {
	ufs := make([]EstatisticaUF, len(s.DespesasPorUF))
	copy(ufs, s.DespesasPorUF)
	sort.SliceStable(ufs, func(i, j int) bool {
		return ufs[i].Total > ufs[j].Total
	})
	if n >= 0 && n < len(ufs) {
		ufs = ufs[:n]
	}
	return ufs
}

// UFShare returns the fraction of TotalDespesas spent in the given UF
// total, or 0 when there is no grand total.
func (s *StatsResponse) UFShare(uf EstatisticaUF) float64 {
	if s.TotalDespesas <= 0 {
		return 0
	}
	return uf.Total / s.TotalDespesas
}

package models

import "time"

// ExportRun records one snapshot written by the export command.
type ExportRun struct {
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	TotalDespesas *float64  `json:"total_despesas,omitempty"`
	MediaDespesas *float64  `json:"media_despesas,omitempty"`
	APIURL        string    `json:"api_url"`
	ID            int64     `json:"id"`
	Operadoras    int       `json:"operadoras"`
	Despesas      int       `json:"despesas"`
}

// Duration returns how long the export took.
func (e *ExportRun) Duration() time.Duration {
	if e.FinishedAt.Before(e.StartedAt) {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

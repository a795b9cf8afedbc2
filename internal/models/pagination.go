package models

import (
	"bytes"
	"encoding/json"
)

// Meta is the pagination envelope returned with every list response.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Consistent reports whether TotalPages matches ceil(Total/Limit).
// The server owns this invariant; the client only uses it for diagnostics.
func (m Meta) Consistent() bool {
	if m.Limit <= 0 {
		return false
	}
	return m.TotalPages == (m.Total+m.Limit-1)/m.Limit
}

// HasNext reports whether a page after the current one exists.
func (m Meta) HasNext() bool {
	return m.Page < m.TotalPages
}

// HasPrev reports whether a page before the current one exists.
func (m Meta) HasPrev() bool {
	return m.Page > 1
}

// Offset returns the zero-based index of the first record on the page.
func (m Meta) Offset() int {
	if m.Page < 1 {
		return 0
	}
	return (m.Page - 1) * m.Limit
}

// PaginatedResponse pairs one page of records with its Meta. CNPJ is only
// set on expense pages, where it scopes the page to one operadora.
type PaginatedResponse[T any] struct {
	CNPJ string `json:"cnpj,omitempty"`
	Data []T    `json:"data"`
	Meta Meta   `json:"meta"`
}

// UnmarshalJSON decodes a page, skipping entries of data that are not JSON
// objects. The backend puts a plain message string in data when an
// operadora has no expenses.
func (p *PaginatedResponse[T]) UnmarshalJSON(b []byte) error {
	var raw struct {
		CNPJ string            `json:"cnpj"`
		Data []json.RawMessage `json:"data"`
		Meta Meta              `json:"meta"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	p.CNPJ = raw.CNPJ
	p.Meta = raw.Meta
	p.Data = make([]T, 0, len(raw.Data))
	for _, item := range raw.Data {
		if !isObject(item) {
			continue
		}
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			return err
		}
		p.Data = append(p.Data, v)
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

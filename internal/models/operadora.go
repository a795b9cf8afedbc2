// Package models defines data structures and domain types.
package models

import (
	"strings"
	"time"
)

// Operadora is a regulated health-plan entity as returned by the API.
// The list endpoint only fills CNPJ, RazaoSocial and UF; the detail endpoint
// fills the rest.
type Operadora struct {
	CNPJ                    string `json:"cnpj"`
	RazaoSocial             string `json:"razao_social"`
	UF                      string `json:"uf"`
	RegistroOperadora       string `json:"registro_operadora,omitempty"`
	NomeFantasia            string `json:"nome_fantasia,omitempty"`
	Modalidade              string `json:"modalidade,omitempty"`
	Logradouro              string `json:"logradouro,omitempty"`
	Numero                  string `json:"numero,omitempty"`
	Complemento             string `json:"complemento,omitempty"`
	Bairro                  string `json:"bairro,omitempty"`
	Cidade                  string `json:"cidade,omitempty"`
	CEP                     string `json:"cep,omitempty"`
	DDD                     string `json:"ddd,omitempty"`
	Telefone                string `json:"telefone,omitempty"`
	Fax                     string `json:"fax,omitempty"`
	EnderecoEletronico      string `json:"endereco_eletronico,omitempty"`
	Representante           string `json:"representante,omitempty"`
	CargoRepresentante      string `json:"cargo_representante,omitempty"`
	RegiaoDeComercializacao string `json:"regiao_de_comercializacao,omitempty"`
	DataRegistroANS         string `json:"data_registro_ans,omitempty"`
}

// DisplayName returns the trade name when present, falling back to the legal name.
func (o *Operadora) DisplayName() string {
	if name := strings.TrimSpace(o.NomeFantasia); name != "" {
		return name
	}
	return o.RazaoSocial
}

// Endereco joins the address parts that are present into a single line.
func (o *Operadora) Endereco() string {
	var street []string
	for _, part := range []string{o.Logradouro, o.Numero, o.Complemento} {
		if p := strings.TrimSpace(part); p != "" {
			street = append(street, p)
		}
	}

	var parts []string
	if len(street) > 0 {
		parts = append(parts, strings.Join(street, ", "))
	}
	if b := strings.TrimSpace(o.Bairro); b != "" {
		parts = append(parts, b)
	}

	locality := strings.TrimSpace(o.Cidade)
	if uf := strings.TrimSpace(o.UF); uf != "" {
		if locality != "" {
			locality += "/" + uf
		} else {
			locality = uf
		}
	}
	if locality != "" {
		parts = append(parts, locality)
	}
	if cep := strings.TrimSpace(o.CEP); cep != "" {
		parts = append(parts, "CEP "+cep)
	}

	return strings.Join(parts, " - ")
}

// Phone returns the phone number prefixed with its area code, if any.
func (o *Operadora) Phone() string {
	tel := strings.TrimSpace(o.Telefone)
	if tel == "" {
		return ""
	}
	if ddd := strings.TrimSpace(o.DDD); ddd != "" {
		return "(" + ddd + ") " + tel
	}
	return tel
}

// RegisteredAt parses DataRegistroANS. The backend has been seen to send both
// ISO dates and HTTP-style dates, so both are accepted. Returns the zero time
// when the field is empty or unparseable.
func (o *Operadora) RegisteredAt() time.Time {
	return parseDateField(o.DataRegistroANS)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"02/01/2006",
}

func parseDateField(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

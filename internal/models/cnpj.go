package models

import "strings"

// CNPJLength is the number of digits in a normalized CNPJ.
const CNPJLength = 14

// CleanCNPJ strips every non-digit character, so "12.345.678/0001-90"
// becomes "12345678000190".
func CleanCNPJ(cnpj string) string {
	var b strings.Builder
	b.Grow(len(cnpj))
	for _, r := range cnpj {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCNPJ reports whether cnpj has exactly 14 digits once cleaned.
// Check digits are not verified; the API applies the same rule.
func ValidCNPJ(cnpj string) bool {
	return len(CleanCNPJ(cnpj)) == CNPJLength
}

// FormatCNPJ renders a CNPJ as 00.000.000/0000-00. Values that do not
// clean to 14 digits are returned unchanged.
func FormatCNPJ(cnpj string) string {
	d := CleanCNPJ(cnpj)
	if len(d) != CNPJLength {
		return cnpj
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

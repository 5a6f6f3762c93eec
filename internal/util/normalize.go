package util

import "strings"

// OnlyDigits descarta tudo que não for dígito.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePlaca remove separadores e converte para maiúsculas, o
// formato de placa aceito no fio.
func NormalizePlaca(placa string) string {
	return strings.ToUpper(strings.ReplaceAll(placa, "-", ""))
}

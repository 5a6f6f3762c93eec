package alugacao

import (
	"regexp"
	"strings"

	"github.com/safeyard/patio/internal/util"
)

// Máscaras de digitação. São transformações puras e idempotentes:
// aplicar a máscara sobre a própria saída não altera nada, então podem
// rodar a cada tecla sem corromper entrada parcial.

// FormatCPF agrupa os dígitos no padrão 123.456.789-01.
func FormatCPF(value string) string {
	digits := util.OnlyDigits(value)
	if len(digits) > 11 {
		digits = digits[:11]
	}

	switch n := len(digits); {
	case n <= 3:
		return digits
	case n <= 6:
		return digits[:3] + "." + digits[3:]
	case n <= 9:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:]
	default:
		return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
	}
}

// FormatPlaca converte para maiúsculas e insere o separador após o
// terceiro caractere (ABC-1234).
func FormatPlaca(value string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(value) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if len(cleaned) > 7 {
		cleaned = cleaned[:7]
	}
	if len(cleaned) <= 3 {
		return cleaned
	}
	return cleaned[:3] + "-" + cleaned[3:]
}

// FormatData agrupa os dígitos no padrão DD/MM/AAAA.
func FormatData(value string) string {
	digits := util.OnlyDigits(value)
	if len(digits) > 8 {
		digits = digits[:8]
	}

	switch n := len(digits); {
	case n <= 2:
		return digits
	case n <= 4:
		return digits[:2] + "/" + digits[2:]
	default:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	}
}

var (
	isoDateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T`)
	isoDateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	brDateRe      = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	isoPrefixRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
)

// BRToISODateTime converte DD/MM/AAAA para AAAA-MM-DDT00:00:00, o
// formato de data aceito pela API. Entradas já em ISO passam intactas
// (datas puras ganham a hora); entrada irreconhecível volta inalterada;
// a validação acontece antes, na camada de formulário.
func BRToISODateTime(d string) string {
	if d == "" {
		return d
	}
	if isoDateTimeRe.MatchString(d) {
		return d
	}
	if isoDateRe.MatchString(d) {
		return d + "T00:00:00"
	}
	m := brDateRe.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	return m[3] + "-" + m[2] + "-" + m[1] + "T00:00:00"
}

// ISOToBR reordena o prefixo AAAA-MM-DD de qualquer data ISO para
// DD/MM/AAAA; entrada irreconhecível volta inalterada.
func ISOToBR(d string) string {
	if d == "" {
		return ""
	}
	m := isoPrefixRe.FindStringSubmatch(d)
	if m == nil {
		return d
	}
	return m[3] + "/" + m[2] + "/" + m[1]
}

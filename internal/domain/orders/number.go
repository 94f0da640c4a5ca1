package orders

import (
	"fmt"
	"regexp"
	"strconv"
)

// Las órdenes se numeran OS-YYYY-NNN con secuencia que reinicia cada año.
var idPattern = regexp.MustCompile(`^OS-(\d{4})-(\d{3,})$`)

// FormatID construye el identificador de orden para un año y secuencia dados.
// La secuencia se rellena a 3 dígitos (OS-2025-001) pero puede crecer más allá de 999.
func FormatID(year, seq int) string {
	return fmt.Sprintf("OS-%d-%03d", year, seq)
}

// ParseID descompone un identificador OS-YYYY-NNN. Devuelve ok=false si el
// formato no corresponde (los IDs legados con otro formato se ignoran al numerar).
func ParseID(id string) (year, seq int, ok bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return year, seq, true
}

// NextID calcula el siguiente identificador para el año dado a partir de los
// IDs existentes. Solo cuenta los del mismo año; el resto no afecta la secuencia.
func NextID(existing []string, year int) string {
	max := 0
	for _, id := range existing {
		y, seq, ok := ParseID(id)
		if !ok || y != year {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return FormatID(year, max+1)
}

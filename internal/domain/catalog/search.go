package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Los nombres de piezas y clientes mezclan acentos portugueses ("Refletor",
// "João") con entradas de búsqueda sin acentos. La búsqueda normaliza ambos
// lados: minúsculas y sin marcas diacríticas.

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un texto para búsqueda: minúsculas y sin acentos.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Matches indica si needle aparece en haystack ignorando mayúsculas y acentos.
// Needle vacío siempre matchea (filtro sin texto = sin filtro).
func Matches(haystack, needle string) bool {
	if strings.TrimSpace(needle) == "" {
		return true
	}
	return strings.Contains(Fold(haystack), Fold(needle))
}

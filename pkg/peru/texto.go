package peru

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza texto para búsqueda libre: minúsculas y sin tildes/diéresis.
// "Señor de los Milagros" y "SENOR DE LOS MILAGROS" colapsan al mismo valor.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

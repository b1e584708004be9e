package peru

import (
	"fmt"
	"strings"
)

// NormalizePlaca normaliza una placa vehicular: mayúsculas, sin espacios
// internos, guion permitido. El resultado debe tener entre 6 y 8 caracteres.
// SUNARP registra placas con y sin guion ("V1A-123", "V1A123"); se conserva
// el guion tal como llegó para no romper la búsqueda por prefijo.
func NormalizePlaca(placa string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(placa))
	p = strings.Join(strings.Fields(p), "")
	if len(p) < 6 || len(p) > 8 {
		return "", fmt.Errorf("peru: placa debe tener entre 6 y 8 caracteres tras normalizar, quedó %q", p)
	}
	for _, r := range p {
		ok := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
		if !ok {
			return "", fmt.Errorf("peru: placa contiene carácter inválido %q en %q", r, p)
		}
	}
	return p, nil
}

package peru

import (
	"fmt"
	"strings"
)

// NormalizeTelefonos normaliza una lista de teléfonos separados por espacios.
// Cada token debe tener de 6 a 15 dígitos, admitiendo '-', '(' y ')' como
// separadores visuales. El resultado une los tokens con ", ". Si cualquier
// token es inválido falla la lista completa.
func NormalizeTelefonos(raw string) (string, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return "", nil
	}
	for _, tok := range tokens {
		if err := validateTelefono(tok); err != nil {
			return "", err
		}
	}
	return strings.Join(tokens, ", "), nil
}

func validateTelefono(tok string) error {
	digits := 0
	for _, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '-' || r == '(' || r == ')':
			// separador visual permitido
		default:
			return fmt.Errorf("peru: teléfono %q contiene carácter inválido %q", tok, r)
		}
	}
	if digits < 6 || digits > 15 {
		return fmt.Errorf("peru: teléfono %q debe tener entre 6 y 15 dígitos, tiene %d", tok, digits)
	}
	return nil
}

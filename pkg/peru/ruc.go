// Package peru agrupa las reglas de identificadores y fechas peruanas que usa
// el registro: RUC (SUNAT), DNI (RENIEC), placas vehiculares, listas de
// teléfonos y la aritmética de vigencia de resoluciones.
package peru

import "fmt"

// ValidateRUC valida que el RUC tenga exactamente 11 dígitos numéricos.
// No se normaliza: espacios al inicio/fin o caracteres no numéricos rechazan.
// SUNAT no exige dígito verificador en los padrones que consume el registro.
func ValidateRUC(ruc string) error {
	if len(ruc) != 11 {
		return fmt.Errorf("peru: RUC debe tener 11 dígitos, se recibieron %d caracteres", len(ruc))
	}
	if !allDigits(ruc) {
		return fmt.Errorf("peru: RUC debe ser numérico: %q", ruc)
	}
	return nil
}

// ValidateDNI valida que el DNI tenga exactamente 8 dígitos numéricos.
func ValidateDNI(dni string) error {
	if len(dni) != 8 {
		return fmt.Errorf("peru: DNI debe tener 8 dígitos, se recibieron %d caracteres", len(dni))
	}
	if !allDigits(dni) {
		return fmt.Errorf("peru: DNI debe ser numérico: %q", dni)
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

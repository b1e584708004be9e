package peru

import (
	"fmt"
	"time"
)

// ToleranciaFinVigencia es la discrepancia máxima admitida entre la fecha de
// fin declarada en un Excel y la calculada. Más allá, gana la calculada y se
// reporta advertencia.
const ToleranciaFinVigencia = 2 * 24 * time.Hour

// VigenciaValida informa si los años de vigencia son admisibles para una
// resolución padre (D.S. 017-2009-MTC: 4 años provinciales, 10 regionales).
func VigenciaValida(years int) bool {
	return years == 4 || years == 10
}

// FinVigencia calcula el último día inclusive de la vigencia:
// inicio + años − 1 día. El 29 de febrero se normaliza según el calendario
// del año destino (29/02/2024 + 4 años − 1 día = 28/02/2028).
func FinVigencia(inicio time.Time, years int) (time.Time, error) {
	if !VigenciaValida(years) {
		return time.Time{}, fmt.Errorf("peru: años de vigencia inválidos: %d (se admite 4 o 10)", years)
	}
	return inicio.AddDate(years, 0, 0).AddDate(0, 0, -1), nil
}

// InicioVigencia es la inversa de FinVigencia: fin − años + 1 día.
func InicioVigencia(fin time.Time, years int) (time.Time, error) {
	if !VigenciaValida(years) {
		return time.Time{}, fmt.Errorf("peru: años de vigencia inválidos: %d (se admite 4 o 10)", years)
	}
	return fin.AddDate(-years, 0, 0).AddDate(0, 0, 1), nil
}

// FinDeclaradoCoincide compara el fin declarado contra el calculado con la
// tolerancia de ±2 días.
func FinDeclaradoCoincide(calculado, declarado time.Time) bool {
	d := declarado.Sub(calculado)
	if d < 0 {
		d = -d
	}
	return d <= ToleranciaFinVigencia
}

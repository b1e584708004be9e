package peru

import (
	"fmt"
	"time"
)

// Formatos de fecha aceptados por las plantillas de carga y la API.
const (
	FormatoPeruano = "02/01/2006" // dd/mm/yyyy
	FormatoISO     = "2006-01-02" // YYYY-MM-DD
)

// ParseFecha acepta dd/mm/yyyy y YYYY-MM-DD; cualquier otra forma rechaza.
// Las fechas del registro son días calendario, se fijan en UTC medianoche.
func ParseFecha(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(FormatoPeruano, s, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(FormatoISO, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("peru: fecha %q no tiene formato dd/mm/yyyy ni YYYY-MM-DD", s)
}

// FormatFecha serializa un día calendario en formato peruano.
func FormatFecha(t time.Time) string {
	return t.Format(FormatoPeruano)
}

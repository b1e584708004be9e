package peru_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/pkg/peru"
)

func fecha(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := peru.ParseFecha(s)
	require.NoError(t, err)
	return d
}

func TestFinVigencia(t *testing.T) {
	cases := []struct {
		inicio string
		years  int
		fin    string
	}{
		{"20/03/2024", 10, "19/03/2034"},
		{"20/03/2024", 4, "19/03/2028"},
		{"01/01/2020", 4, "31/12/2023"},
		// año bisiesto: el 29 de febrero se normaliza al calendario destino
		{"29/02/2024", 4, "28/02/2028"},
		{"29/02/2024", 10, "28/02/2034"},
	}
	for _, tc := range cases {
		fin, err := peru.FinVigencia(fecha(t, tc.inicio), tc.years)
		require.NoError(t, err)
		assert.True(t, fin.Equal(fecha(t, tc.fin)),
			"inicio %s + %d años: esperado %s, obtenido %s", tc.inicio, tc.years, tc.fin, peru.FormatFecha(fin))
	}
}

func TestFinVigencia_YearsInvalidos(t *testing.T) {
	for _, years := range []int{0, 1, 3, 5, 9, 11, -4} {
		_, err := peru.FinVigencia(fecha(t, "01/01/2024"), years)
		assert.Error(t, err, "years=%d", years)
	}
}

// Ley de simetría: fin = inicio + años − 1 día  ⇔  inicio = fin − años + 1 día.
func TestVigencia_Simetria(t *testing.T) {
	for _, inicio := range []string{"20/03/2024", "01/01/2020", "15/07/2019", "01/03/2024"} {
		for _, years := range []int{4, 10} {
			ini := fecha(t, inicio)
			fin, err := peru.FinVigencia(ini, years)
			require.NoError(t, err)
			back, err := peru.InicioVigencia(fin, years)
			require.NoError(t, err)
			assert.True(t, back.Equal(ini), "inicio %s years %d: vuelta %s", inicio, years, peru.FormatFecha(back))
		}
	}
}

func TestFinDeclaradoCoincide(t *testing.T) {
	calculado := fecha(t, "19/03/2034")
	assert.True(t, peru.FinDeclaradoCoincide(calculado, calculado))
	assert.True(t, peru.FinDeclaradoCoincide(calculado, fecha(t, "21/03/2034")))
	assert.True(t, peru.FinDeclaradoCoincide(calculado, fecha(t, "17/03/2034")))
	assert.False(t, peru.FinDeclaradoCoincide(calculado, fecha(t, "22/03/2034")))
	assert.False(t, peru.FinDeclaradoCoincide(calculado, fecha(t, "16/03/2034")))
}

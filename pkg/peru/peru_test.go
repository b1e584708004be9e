package peru_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drtc-puno/sirret-api/pkg/peru"
)

func TestValidateRUC(t *testing.T) {
	cases := []struct {
		name  string
		ruc   string
		valid bool
	}{
		{"once dígitos", "20123456789", true},
		{"diez dígitos", "2012345678", false},
		{"doce dígitos", "201234567890", false},
		{"con letra", "2012345678A", false},
		{"con espacio final", "20123456789 ", false},
		{"con espacio inicial", " 20123456789", false},
		{"vacío", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := peru.ValidateRUC(tc.ruc)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateDNI(t *testing.T) {
	assert.NoError(t, peru.ValidateDNI("40123456"))
	assert.Error(t, peru.ValidateDNI("4012345"))
	assert.Error(t, peru.ValidateDNI("401234567"))
	assert.Error(t, peru.ValidateDNI("4012345X"))
}

func TestNormalizePlaca(t *testing.T) {
	cases := []struct {
		in   string
		out  string
		fail bool
	}{
		{in: "v1a-123", out: "V1A-123"},
		{in: " V1A 123 ", out: "V1A123"},
		{in: "abc1234", out: "ABC1234"},
		{in: "ab12", fail: true},            // muy corta
		{in: "ABCD-12345", fail: true},      // muy larga
		{in: "V1A_123", fail: true},         // carácter inválido
	}
	for _, tc := range cases {
		got, err := peru.NormalizePlaca(tc.in)
		if tc.fail {
			assert.Error(t, err, "placa %q", tc.in)
			continue
		}
		require.NoError(t, err, "placa %q", tc.in)
		assert.Equal(t, tc.out, got)
	}
}

// Escenario S6 de la mesa de ayuda: dos teléfonos separados por espacio se
// almacenan unidos por ", "; un token no numérico invalida la lista completa.
func TestNormalizeTelefonos(t *testing.T) {
	got, err := peru.NormalizeTelefonos("051-123456 054-987654")
	require.NoError(t, err)
	assert.Equal(t, "051-123456, 054-987654", got)

	_, err = peru.NormalizeTelefonos("051-123456 abc")
	assert.Error(t, err)

	got, err = peru.NormalizeTelefonos("  ")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = peru.NormalizeTelefonos("(051)365001")
	require.NoError(t, err)
	assert.Equal(t, "(051)365001", got)

	_, err = peru.NormalizeTelefonos("12345") // menos de 6 dígitos
	assert.Error(t, err)
}

func TestParseFecha(t *testing.T) {
	d1, err := peru.ParseFecha("20/03/2024")
	require.NoError(t, err)
	d2, err := peru.ParseFecha("2024-03-20")
	require.NoError(t, err)
	assert.True(t, d1.Equal(d2))

	_, err = peru.ParseFecha("03-20-2024")
	assert.Error(t, err)
	_, err = peru.ParseFecha("20/13/2024")
	assert.Error(t, err)
	_, err = peru.ParseFecha("")
	assert.Error(t, err)
}

func TestFold(t *testing.T) {
	assert.Equal(t, peru.Fold("SEÑOR DE LOS MILAGROS"), peru.Fold("señor de los milagros"))
	assert.Equal(t, "juliaca", peru.Fold("  Juliaca "))
	assert.Equal(t, "san roman", peru.Fold("San Román"))
}

package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Matola", "matola"},
		{"MATOLA, Maputo", "matola maputo"},
		{"Xai-Xai", "xai xai"},
		{"Zambézia", "zambezia"},
		{"Chókwè", "chokwe"},
		{"  Mocímboa   da Praia! ", "mocimboa da praia"},
		{"Av. 24 de Julho, 1234", "av 24 de julho 1234"},
		{"Gurué\tZambézia", "gurue zambezia"},
		{"¿¡...!?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Matola", "Xai-Xai", "Cidade de Maputo", "Zambézia", "  Beira -- Sofala ",
		"Nacala-a-Velha", "São Tomé", "Ilha de Moçambique", "Maxixe/Inhambane", "Pemba (Cabo Delgado)",
		"ÀÉÎÕÜ çñ", "123 Rua 4", "\n\tTete\n",
	}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "input %q", s)
	}
}

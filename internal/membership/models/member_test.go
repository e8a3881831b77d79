package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruthyField(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   bool
	}{
		{"single true", []string{"true"}, true},
		{"single false", []string{"false"}, false},
		{"absent", nil, false},
		{"empty value", []string{""}, false},
		{"checkbox plus hidden input", []string{"false", "true"}, true},
		{"repeated false", []string{"false", "false"}, false},
		{"capitalized is not truthy", []string{"True"}, false},
		{"arbitrary value", []string{"on"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TruthyField(tc.values))
		})
	}
}

func TestFromForm(t *testing.T) {
	m := FromForm(map[string][]string{
		"nom":           {"Koné"},
		"prenoms":       {"Awa"},
		"naissance":     {"1994-05-12"},
		"lieu":          {"Abidjan"},
		"piece":         {"CNI"},
		"numero_piece":  {"CI-123456"},
		"pays":          {"Côte d'Ivoire"},
		"ville":         {"Abidjan"},
		"tel":           {"+2250700000000"},
		"email":         {"awa.kone@example.com"},
		"profession":    {"Enseignante"},
		"sexe":          {"F"},
		"nationalite":   {"Ivoirienne"},
		"niveau":        {"Licence"},
		"motivation":    {"Aider la communauté"},
		"payAdhesion":   {"true"},
		"payCotisation": {"false"},
	})

	assert.Equal(t, "Koné", m.Nom)
	assert.Equal(t, "Awa", m.Prenoms)
	assert.Equal(t, "1994-05-12", m.Naissance)
	assert.Equal(t, "CNI", m.Piece)
	assert.Equal(t, "CI-123456", m.NumeroPiece)
	assert.Equal(t, "awa.kone@example.com", m.Email)
	assert.True(t, m.PayAdhesion)
	assert.False(t, m.PayCotisation)
	assert.Empty(t, m.Numero, "numero is assigned by the pipeline, not the form")
	assert.Empty(t, m.PhotoPath)
}

func TestFullName(t *testing.T) {
	m := Member{Nom: "Koné", Prenoms: "Awa"}
	assert.Equal(t, "Koné Awa", m.FullName())

	assert.Equal(t, "Koné", Member{Nom: "Koné"}.FullName())
	assert.Equal(t, "", Member{}.FullName())
}

func TestWantsPayment(t *testing.T) {
	assert.False(t, Member{}.WantsPayment())
	assert.True(t, Member{PayAdhesion: true}.WantsPayment())
	assert.True(t, Member{PayCotisation: true}.WantsPayment())
	assert.True(t, Member{PayAdhesion: true, PayCotisation: true}.WantsPayment())
}

// Package models holds the membership record entity and its form decoding.
package models

import "strings"

// Member is the persisted membership record. Field names mirror the
// registration form; JSON tags are the storage contract and must stay stable.
type Member struct {
	Numero        string `json:"numero"`
	Nom           string `json:"nom"`
	Prenoms       string `json:"prenoms"`
	Naissance     string `json:"naissance"`
	Lieu          string `json:"lieu"`
	Piece         string `json:"piece"`
	NumeroPiece   string `json:"numero_piece"`
	Pays          string `json:"pays"`
	Ville         string `json:"ville"`
	Tel           string `json:"tel"`
	Email         string `json:"email"`
	Profession    string `json:"profession"`
	Sexe          string `json:"sexe"`
	Nationalite   string `json:"nationalite"`
	Niveau        string `json:"niveau"`
	Motivation    string `json:"motivation"`
	PayAdhesion   bool   `json:"payAdhesion"`
	PayCotisation bool   `json:"payCotisation"`
	PhotoPath     string `json:"photoPath,omitempty"`
}

// FullName joins surname and given names for display and notification text.
func (m Member) FullName() string {
	return strings.TrimSpace(m.Nom + " " + m.Prenoms)
}

// WantsPayment reports whether the submission asked for any payment at all.
func (m Member) WantsPayment() bool {
	return m.PayAdhesion || m.PayCotisation
}

// FromForm builds a Member from decoded multipart form values. Numero and
// PhotoPath are assigned later by the pipeline.
func FromForm(values map[string][]string) Member {
	return Member{
		Nom:           first(values, "nom"),
		Prenoms:       first(values, "prenoms"),
		Naissance:     first(values, "naissance"),
		Lieu:          first(values, "lieu"),
		Piece:         first(values, "piece"),
		NumeroPiece:   first(values, "numero_piece"),
		Pays:          first(values, "pays"),
		Ville:         first(values, "ville"),
		Tel:           first(values, "tel"),
		Email:         first(values, "email"),
		Profession:    first(values, "profession"),
		Sexe:          first(values, "sexe"),
		Nationalite:   first(values, "nationalite"),
		Niveau:        first(values, "niveau"),
		Motivation:    first(values, "motivation"),
		PayAdhesion:   TruthyField(values["payAdhesion"]),
		PayCotisation: TruthyField(values["payCotisation"]),
	}
}

// TruthyField normalizes the form transport encoding of a boolean: the field
// may arrive once or repeated (checkbox plus hidden input), and is true when
// any submitted value is the string "true".
func TruthyField(values []string) bool {
	for _, v := range values {
		if v == "true" {
			return true
		}
	}
	return false
}

func first(values map[string][]string, key string) string {
	if vs := values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"adhesion/internal/membership/models"
)

// StaticInitiator synthesizes the redirect URL locally from a fixed
// template, with no gateway round trip. Used when no gateway credentials
// are configured.
type StaticInitiator struct {
	baseURL string
}

// NewStatic returns an initiator building URLs under baseURL.
func NewStatic(baseURL string) *StaticInitiator {
	return &StaticInitiator{baseURL: strings.TrimRight(baseURL, "/")}
}

// Initiate builds {base}/initier?montant={amount}&ref={numero}.
func (s *StaticInitiator) Initiate(ctx context.Context, m models.Member, amount int64) (string, error) {
	q := url.Values{}
	q.Set("montant", fmt.Sprintf("%d", amount))
	q.Set("ref", m.Numero)
	return s.baseURL + "/initier?" + q.Encode(), nil
}

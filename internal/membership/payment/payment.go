// Package payment initiates a gateway transaction for submissions that
// asked to pay. Initiation is best-effort: any failure yields no URL, never
// a failed submission.
package payment

import (
	"context"

	"adhesion/internal/membership/models"
)

// Tariffs in XOF. Both may apply on one submission.
const (
	AdhesionFee   int64 = 5000
	CotisationFee int64 = 10000
)

// Currency is the fixed ISO code sent to the gateway.
const Currency = "XOF"

// Initiator obtains a payment redirect URL for a member. An empty URL with
// a non-nil error means the gateway declined or was unreachable; callers
// log it and move on.
type Initiator interface {
	Initiate(ctx context.Context, m models.Member, amount int64) (string, error)
}

// Amount computes the total owed from the payment flags.
func Amount(m models.Member) int64 {
	var total int64
	if m.PayAdhesion {
		total += AdhesionFee
	}
	if m.PayCotisation {
		total += CotisationFee
	}
	return total
}

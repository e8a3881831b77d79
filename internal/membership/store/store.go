// Package store persists membership records, content-addressed by numero.
// Records are append-only: nothing in the system updates or deletes one.
package store

import (
	"context"

	"adhesion/internal/membership/models"
)

// RecordStore saves and loads membership records by numero.
type RecordStore interface {
	Save(ctx context.Context, m models.Member) error
	Load(ctx context.Context, numero string) (models.Member, error)
}

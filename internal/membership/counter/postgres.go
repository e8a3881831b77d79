package counter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const sequenceName = "membership_numero_seq"

// PostgresSource delegates numbering to a database sequence, which
// guarantees uniqueness and monotonicity under concurrency.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgres ensures the sequence exists and returns a source backed by it.
func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*PostgresSource, error) {
	_, err := pool.Exec(ctx, "CREATE SEQUENCE IF NOT EXISTS "+sequenceName)
	if err != nil {
		return nil, fmt.Errorf("create sequence: %w", err)
	}
	return &PostgresSource{pool: pool}, nil
}

// Next fetches the next sequence value.
func (s *PostgresSource) Next(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, "SELECT nextval('"+sequenceName+"')").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("nextval %s: %w", sequenceName, err)
	}
	return n, nil
}

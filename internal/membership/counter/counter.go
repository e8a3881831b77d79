// Package counter provides the membership-number source. All variants hand
// out strictly increasing integers; the postgres and redis variants are
// atomic under concurrent submissions by construction.
package counter

import "context"

// Source hands out the next membership sequence value. Implementations must
// never return the same value to two callers.
type Source interface {
	Next(ctx context.Context) (int64, error)
}

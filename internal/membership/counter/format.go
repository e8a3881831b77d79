package counter

import "fmt"

// Format renders a sequence value as a membership number. Values are
// zero-padded to four digits; larger values keep all their digits.
func Format(n int64) string {
	return fmt.Sprintf("M-%04d", n)
}

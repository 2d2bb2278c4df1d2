package domain

import "time"

// Expired reports whether deadline has lapsed at the given instant.
// A zero deadline never expires.
func Expired(deadline, now time.Time) bool {
	return !deadline.IsZero() && !now.Before(deadline)
}

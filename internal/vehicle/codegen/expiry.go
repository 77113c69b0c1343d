package codegen

import "time"

// DefaultExpiry is February 1 of the year after issuance, in the issue
// time's location. An explicit expiry always wins.
func DefaultExpiry(issuedAt time.Time, explicit *time.Time) time.Time {
	if explicit != nil && !explicit.IsZero() {
		return *explicit
	}
	return time.Date(issuedAt.Year()+1, time.February, 1, 0, 0, 0, 0, issuedAt.Location())
}

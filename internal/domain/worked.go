package domain

import (
	"errors"
	"fmt"
	"time"
)

// ComputeWorked returns the time worked in s up to asOf: elapsed time minus the
// duration of every pause, an open pause counting up to asOf.
//
// The result is never negative. When the raw value would be negative, or asOf
// precedes the session start, or a pause has a negative length, the clamped value
// is still returned together with an ErrDataIntegrity error describing the problem.
// ComputeWorked only reads s and is safe for concurrent use.
func ComputeWorked(s Session, asOf time.Time) (time.Duration, error) {
	if asOf.Before(s.StartedAt) {
		return 0, newIntegrityError(s.ID, fmt.Sprintf("reference time %s precedes session start %s",
			asOf.Format(time.RFC3339), s.StartedAt.Format(time.RFC3339)))
	}

	var errs []error
	worked := asOf.Sub(s.StartedAt)
	for _, p := range s.Pauses {
		d := PauseDuration(p, asOf)
		if d < 0 {
			errs = append(errs, newIntegrityError(s.ID, fmt.Sprintf("pause %s has negative length %s", p.ID, d)))
			continue
		}
		worked -= d
	}

	if worked < 0 {
		errs = append(errs, newIntegrityError(s.ID, fmt.Sprintf("pauses exceed elapsed time by %s", -worked)))
		worked = 0
	}
	return worked, errors.Join(errs...)
}

// PauseDuration returns the length of p, counting an open pause up to asOf
func PauseDuration(p Pause, asOf time.Time) time.Duration {
	end := asOf
	if p.EndedAt != nil {
		end = *p.EndedAt
	}
	return end.Sub(p.StartedAt)
}

// WorkedAt computes worked time for display: completed sessions are measured at
// their end, open ones at now.
func WorkedAt(s Session, now time.Time) (time.Duration, error) {
	if s.EndedAt != nil {
		return ComputeWorked(s, *s.EndedAt)
	}
	return ComputeWorked(s, now)
}

// TotalPaused sums the pause durations of s up to asOf, ignoring negative ones
func TotalPaused(s Session, asOf time.Time) time.Duration {
	var total time.Duration
	for _, p := range s.Pauses {
		if d := PauseDuration(p, asOf); d > 0 {
			total += d
		}
	}
	return total
}

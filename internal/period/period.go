// Package period handles the 6-digit YYYYMM month labels that drive
// extraction runs and artifact naming.
package period

import (
	"fmt"
	"time"
)

// Validate checks that label is a well-formed YYYYMM month token.
func Validate(label string) error {
	if _, err := parse(label); err != nil {
		return err
	}
	return nil
}

// Range returns the first and last day of the labeled month.
func Range(label string) (start, end time.Time, err error) {
	first, err := parse(label)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	// Day zero of the next month is the last day of this one.
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last, nil
}

func parse(label string) (time.Time, error) {
	if len(label) != 6 {
		return time.Time{}, fmt.Errorf("invalid month label %q: expected YYYYMM", label)
	}
	t, err := time.Parse("200601", label)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month label %q: %w", label, err)
	}
	return t, nil
}

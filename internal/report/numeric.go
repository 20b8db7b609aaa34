package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotNumeric signals that a cell held no parseable number. Callers must
// keep the value missing; it is never substituted with zero.
var ErrNotNumeric = errors.New("value is not numeric")

// ParseDecimal converts a thousands-dot/decimal-comma formatted string
// ("1.234,56", "R$ 10,00") into a float64. Stray non-numeric characters are
// stripped before parsing. Blank input and residue that is not a number
// return ErrNotNumeric.
func ParseDecimal(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == ',', r == '.', r == '-':
			return r
		}
		return -1
	}, s)

	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, ErrNotNumeric
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, strings.TrimSpace(s))
	}
	return v, nil
}

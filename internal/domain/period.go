package domain

import (
	"fmt"
	"strconv"
)

// Periods are year-month keys in YYYYMM integer form (ANNOMES in the legacy
// tables). They stay integers internally and are rendered as strings only at
// the response boundary.

// ParsePeriod validates and parses a YYYYMM period bound. A 4-digit year and a
// month between 01 and 12 are required; anything else is an InvalidRangeError.
func ParsePeriod(param, value string) (int, error) {
	p, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidRangeError{Param: param, Value: value}
	}
	if !ValidPeriod(p) {
		return 0, &InvalidRangeError{Param: param, Value: value}
	}
	return p, nil
}

// ValidPeriod reports whether p is a well-formed YYYYMM integer.
func ValidPeriod(p int) bool {
	year := p / 100
	month := p % 100
	return year >= 1000 && year <= 9999 && month >= 1 && month <= 12
}

// PeriodLabel renders a period for output, e.g. 202401 -> "202401".
func PeriodLabel(p int) string {
	return fmt.Sprintf("%06d", p)
}

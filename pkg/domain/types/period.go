package types

import "fmt"

// PeriodType is a named calendar granularity used to bucket logs for
// aggregation and insight generation.
type PeriodType string

const (
	PeriodDay   PeriodType = "day"
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

// AllPeriodTypes returns all valid period types
func AllPeriodTypes() []PeriodType {
	return []PeriodType{PeriodDay, PeriodWeek, PeriodMonth}
}

// IsValid checks if the period type is valid
func (p PeriodType) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the period type
func (p PeriodType) String() string {
	return string(p)
}

// ParsePeriodType parses a string into a PeriodType
func ParsePeriodType(s string) (PeriodType, error) {
	period := PeriodType(s)
	if !period.IsValid() {
		return "", fmt.Errorf("invalid period type: %s", s)
	}
	return period, nil
}

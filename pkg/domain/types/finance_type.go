package types

import "fmt"

// FinanceType represents the direction of a finance record
type FinanceType string

const (
	FinanceExpense FinanceType = "EXPENSE"
	FinanceIncome  FinanceType = "INCOME"
)

// AllFinanceTypes returns all valid finance types
func AllFinanceTypes() []FinanceType {
	return []FinanceType{FinanceExpense, FinanceIncome}
}

// IsValid checks if the finance type is valid
func (t FinanceType) IsValid() bool {
	switch t {
	case FinanceExpense, FinanceIncome:
		return true
	default:
		return false
	}
}

// String returns the string representation of the finance type
func (t FinanceType) String() string {
	return string(t)
}

// ParseFinanceType parses a string into a FinanceType
func ParseFinanceType(s string) (FinanceType, error) {
	ft := FinanceType(s)
	if !ft.IsValid() {
		return "", fmt.Errorf("invalid finance type: %s", s)
	}
	return ft, nil
}

package types

import "fmt"

// Category classifies what kind of activity a log entry records.
// The enum value is the canonical aggregation and storage key; localized
// display labels are applied only at presentation boundaries.
type Category string

const (
	CategoryWork    Category = "Work"
	CategoryLeisure Category = "Leisure"
	CategoryHealth  Category = "Health"
	CategoryChores  Category = "Chores"
	CategorySocial  Category = "Social"
	CategoryOther   Category = "Other"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryLeisure,
		CategoryHealth,
		CategoryChores,
		CategorySocial,
		CategoryOther,
	}
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork,
		CategoryLeisure,
		CategoryHealth,
		CategoryChores,
		CategorySocial,
		CategoryOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	category := Category(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return category, nil
}

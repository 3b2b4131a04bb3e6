package models

import "strings"

// Category is one of a fixed set of habit groupings.
type Category string

const (
	CategoryHealth       Category = "Health"
	CategoryProductivity Category = "Productivity"
	CategoryStudy        Category = "Study"
	CategoryFitness      Category = "Fitness"
	CategoryFinance      Category = "Finance"
	CategoryHobby        Category = "Hobby"
	CategoryGeneral      Category = "General"
)

// DefaultCategory is the fallback for unknown or empty input.
const DefaultCategory = CategoryGeneral

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryProductivity,
		CategoryStudy,
		CategoryFitness,
		CategoryFinance,
		CategoryHobby,
		CategoryGeneral,
	}
}

// NormalizeCategory maps free-text input onto the fixed category set.
// Anything that is not a known category (case-insensitively) becomes
// DefaultCategory rather than an error.
func NormalizeCategory(input string) Category {
	trimmed := strings.TrimSpace(input)
	for _, c := range Categories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return DefaultCategory
}

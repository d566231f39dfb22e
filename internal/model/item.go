package model

import "strconv"

// Item is a single line item rendered as one row of a report.
// Items are owned by the caller; report generation works on copies.
type Item struct {
	// ID is an opaque identifier, unique within one report run.
	ID string `json:"id" yaml:"id"`

	// Name is the display name of the item.
	Name string `json:"name" yaml:"name"`

	// Value is the unit-less amount summed into the report total.
	Value float64 `json:"value" yaml:"value"`

	// Priority is set by role strategies that enrich high-value items.
	// It is false until a strategy sets it.
	Priority bool `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// User is the person a report is rendered for.
// The role decides which items are visible and how they are enriched.
type User struct {
	// Name is the display name embedded in report headers and rows.
	Name string `json:"name" yaml:"name"`

	// Role selects the role strategy.
	Role Role `json:"role" yaml:"role"`
}

// FormatValue renders a numeric value with the shortest decimal
// representation that round-trips, without exponent notation.
// Whole numbers carry no fractional part: 200, 1500, 12.5.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SumValues returns the total value of the given items.
func SumValues(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Value
	}
	return total
}

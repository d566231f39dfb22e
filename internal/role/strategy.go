package role

import "github.com/nao1215/reportgen/internal/model"

const (
	// PriorityThreshold is the value above which Admin marks items as priority.
	PriorityThreshold = 1000

	// StandardVisibilityLimit is the highest value a standard user may see.
	StandardVisibilityLimit = 500
)

// Strategy holds the visibility and enrichment rules of one role.
// Implementations must be stateless so a single instance can be shared.
type Strategy interface {
	// ShouldInclude reports whether the item is visible to the role.
	ShouldInclude(item model.Item) bool

	// ProcessItem returns the item as it should be rendered for the role.
	ProcessItem(item model.Item) model.Item
}

// Admin sees every item and flags high-value items as priority.
type Admin struct{}

// ShouldInclude always returns true.
func (Admin) ShouldInclude(model.Item) bool {
	return true
}

// ProcessItem sets Priority on the returned copy when Value exceeds
// PriorityThreshold. Items at or below the threshold are returned as given.
func (Admin) ProcessItem(item model.Item) model.Item {
	if item.Value > PriorityThreshold {
		item.Priority = true
	}
	return item
}

// Standard only sees low-value items and applies no enrichment.
type Standard struct{}

// ShouldInclude returns true iff Value is at most StandardVisibilityLimit.
// Hidden items are a filtering rule, not an error.
func (Standard) ShouldInclude(item model.Item) bool {
	return item.Value <= StandardVisibilityLimit
}

// ProcessItem returns the item unchanged.
func (Standard) ProcessItem(item model.Item) model.Item {
	return item
}

package role

import "github.com/nao1215/reportgen/internal/model"

// Registry maps each role to its strategy.
// It is built once and not modified while reports are generated.
type Registry map[model.Role]Strategy

// DefaultRegistry returns the registry of built-in roles.
func DefaultRegistry() Registry {
	return Registry{
		model.RoleAdmin: Admin{},
		model.RoleUser:  Standard{},
	}
}

// Lookup returns the strategy for r.
// Unregistered roles return an *model.UnknownKeyError carrying r.
func (reg Registry) Lookup(r model.Role) (Strategy, error) {
	s, ok := reg[r]
	if !ok {
		return nil, &model.UnknownKeyError{Category: model.CategoryRole, Key: string(r)}
	}
	return s, nil
}

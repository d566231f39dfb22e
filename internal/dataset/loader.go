package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/reportgen/internal/model"
)

var (
	// ErrMissingID is returned when an item has no identifier.
	ErrMissingID = errors.New("item without id")

	// ErrDuplicateID is returned when two items share an identifier.
	ErrDuplicateID = errors.New("duplicate item id")

	// ErrUnsupportedDocument is returned when the document is neither a
	// list of items nor a mapping with an items key.
	ErrUnsupportedDocument = errors.New("unsupported item document: expected a list or an items mapping")
)

// document is the mapping form of an item file.
type document struct {
	Items []model.Item `yaml:"items"`
}

// Load decodes items from r.
// An empty document yields no items and no error.
func Load(r io.Reader) ([]model.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read items: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse items: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrUnsupportedDocument
	}

	var items []model.Item
	switch node := root.Content[0]; node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode items: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode items: %w", err)
		}
		items = doc.Items
	default:
		return nil, ErrUnsupportedDocument
	}

	if err := Validate(items); err != nil {
		return nil, err
	}

	return items, nil
}

// LoadFile decodes items from the file at path.
func LoadFile(path string) ([]model.Item, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided items path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open items file: %w", err)
	}
	defer f.Close()

	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Validate checks that every item has a unique, non-empty identifier.
func Validate(items []model.Item) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if item.ID == "" {
			return fmt.Errorf("item %d: %w", i+1, ErrMissingID)
		}
		if first, ok := seen[item.ID]; ok {
			return fmt.Errorf("items %d and %d: %w: %q", first+1, i+1, ErrDuplicateID, item.ID)
		}
		seen[item.ID] = i
	}
	return nil
}

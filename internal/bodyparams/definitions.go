package bodyparams

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed definitions.yaml
var definitionsYAML []byte

// Definition is a selectable measurement kind. It is reference data and is
// never persisted per user.
type Definition struct {
	ID    int    `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Title string `yaml:"title" json:"title"`
	Unit  string `yaml:"unit" json:"unit"`
}

type Definitions []Definition

func ParseDefinitions(raw []byte) (Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("unmarshal definitions: %w", err)
	}

	seenIDs := make(map[int]bool, len(defs))
	seenLabels := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.ID <= 0 {
			return nil, fmt.Errorf("definition %q: id must be positive", d.Label)
		}
		if d.Label == "" {
			return nil, fmt.Errorf("definition %d: empty label", d.ID)
		}
		if seenIDs[d.ID] || seenLabels[d.Label] {
			return nil, fmt.Errorf("duplicate definition %d/%q", d.ID, d.Label)
		}
		seenIDs[d.ID] = true
		seenLabels[d.Label] = true
	}
	return defs, nil
}

// DefaultDefinitions returns the embedded table.
func DefaultDefinitions() Definitions {
	defs, err := ParseDefinitions(definitionsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded body params definitions: %s", err))
	}
	return defs
}

// ByID resolves an active-field id. Unknown ids, including 0, resolve to nothing.
func (d Definitions) ByID(id int) (Definition, bool) {
	for _, def := range d {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

func (d Definitions) ByLabel(label string) (Definition, bool) {
	for _, def := range d {
		if def.Label == label {
			return def, true
		}
	}
	return Definition{}, false
}

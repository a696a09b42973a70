// Package changeset reads the change document produced by the external
// diff-extraction stage and flattens it into the engine's change records.
package changeset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/huntridge-labs/argus/internal/model"
)

// document mirrors the analyzer's output: per-file entries, each holding the
// resources changed in that file.
type document struct {
	Changes []fileChange `json:"changes"`
}

type fileChange struct {
	File      string     `json:"file"`
	Format    string     `json:"format,omitempty"`
	Resources []resource `json:"resources"`
}

type resource struct {
	Type              string   `json:"type"`
	Name              string   `json:"name"`
	Operation         string   `json:"operation"`
	AttributesChanged []string `json:"attributes_changed,omitempty"`
	Diff              string   `json:"diff,omitempty"`
}

// Load reads a change document from the given path and returns the flattened
// change list in document order. A missing or malformed document is a fatal
// input error.
func Load(path string) ([]model.Change, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load changes %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a change document from raw JSON.
func Parse(data []byte) ([]model.Change, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse changes: %w", err)
	}

	var changes []model.Change
	for _, fc := range doc.Changes {
		for _, r := range fc.Resources {
			changes = append(changes, model.Change{
				ResourceType:      r.Type,
				ResourceName:      r.Name,
				Operation:         r.Operation,
				AttributesChanged: r.AttributesChanged,
				DiffText:          r.Diff,
				SourceFile:        fc.File,
			})
		}
	}
	return changes, nil
}

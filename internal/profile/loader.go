package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a profile document (YAML or JSON, by extension) and overlays it
// on the built-in defaults: fields absent from the document keep their default
// values, present lists replace the default lists entirely. The result is
// validated before being returned; an invalid document is a fatal
// configuration error.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %s: %w", path, err)
	}

	prof := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &prof); err != nil {
			return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &prof); err != nil {
			return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
		}
	default:
		return Profile{}, fmt.Errorf("load profile %s: unsupported extension %q (use .yml, .yaml, or .json)", path, ext)
	}

	if err := prof.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return prof, nil
}

package jobs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// LoadPreset reads form values from a YAML (.yaml, .yml) or TOML (.toml)
// file. Keys missing from the file stay empty.
func LoadPreset(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fields{}, fmt.Errorf("failed to read preset: %w", err)
	}

	var fields Fields
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return Fields{}, fmt.Errorf("failed to parse yaml preset %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fields); err != nil {
			return Fields{}, fmt.Errorf("failed to parse toml preset %s: %w", path, err)
		}
	default:
		return Fields{}, fmt.Errorf("unsupported preset format %q", ext)
	}
	return fields, nil
}

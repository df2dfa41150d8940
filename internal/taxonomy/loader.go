package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quillback/spendsort/internal/model"
)

// File is the on-disk shape of a taxonomy data file. The table is
// versioned configuration, not code: updating provider mappings never
// requires a redeploy of the matching logic.
type File struct {
	Version           string                    `yaml:"version"`
	Entries           []Entry                   `yaml:"entries"`
	PrimaryFallback   map[string]model.Category `yaml:"primary_fallback"`
	SecondaryFallback map[string]model.Category `yaml:"secondary_fallback"`
	Merchants         map[string]model.Category `yaml:"merchants"`
}

// Load reads a taxonomy YAML file and builds the lookup table.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse builds a lookup table from raw taxonomy YAML.
func Parse(data []byte) (*Table, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file: %w", err)
	}

	if len(f.Entries) == 0 && len(f.PrimaryFallback) == 0 && len(f.SecondaryFallback) == 0 && len(f.Merchants) == 0 {
		return nil, fmt.Errorf("taxonomy file contains no mappings")
	}

	for i, e := range f.Entries {
		if e.Category.IsUncategorized() {
			return nil, fmt.Errorf("taxonomy entry %d has no category", i)
		}
		if e.Code == "" && e.Primary == "" && e.Secondary == "" {
			return nil, fmt.Errorf("taxonomy entry %d has no key fields", i)
		}
	}

	return NewTable(f.Version, f.Entries, f.PrimaryFallback, f.SecondaryFallback, f.Merchants), nil
}

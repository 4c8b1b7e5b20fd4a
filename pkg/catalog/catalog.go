package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered index of available proteins. Order matters: the
// selection control mirrors it verbatim.
type Catalog struct {
	Proteins []ProteinDescriptor
}

// Len reports the number of descriptors in the catalog.
func (c Catalog) Len() int {
	return len(c.Proteins)
}

// Parse decodes a catalog payload. JSON payloads must be an array of
// descriptors; anything that does not look like JSON is decoded as a YAML
// sequence instead.
func Parse(data []byte) (Catalog, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return Catalog{}, fmt.Errorf("catalog: payload is empty")
	}

	var descriptors []ProteinDescriptor
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &descriptors); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &descriptors); err != nil {
			return Catalog{}, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	}

	return Catalog{Proteins: descriptors}, nil
}

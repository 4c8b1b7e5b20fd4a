package protein

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColoringOption names a coloring scheme understood by the render engine.
// Params carries algorithm-specific tuning, for example a literal color
// value for the uniform scheme or a numeric domain for value-ranged
// schemes.
type ColoringOption struct {
	Name     string         `json:"name" yaml:"name"`
	SchemeID string         `json:"schemeId" yaml:"schemeId"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Valid reports whether the option carries both a label and a scheme id.
// Invalid options are skipped with a warning rather than failing a load.
func (o ColoringOption) Valid() bool {
	return strings.TrimSpace(o.Name) != "" && strings.TrimSpace(o.SchemeID) != ""
}

// ParseColoringOptions decodes a coloring-options payload. JSON payloads
// must be an array; anything else is decoded as a YAML sequence.
func ParseColoringOptions(data []byte) ([]ColoringOption, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("protein: coloring options payload is empty")
	}

	var options []ColoringOption
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &options); err != nil {
			return nil, fmt.Errorf("protein: decode coloring options: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &options); err != nil {
			return nil, fmt.Errorf("protein: decode coloring options: %w", err)
		}
	}
	return options, nil
}

// ValidColoringOptions filters out invalid entries, reporting each skip
// through warn when it is non-nil. Order is preserved.
func ValidColoringOptions(options []ColoringOption, warn func(option ColoringOption)) []ColoringOption {
	out := make([]ColoringOption, 0, len(options))
	for _, option := range options {
		if !option.Valid() {
			if warn != nil {
				warn(option)
			}
			continue
		}
		out = append(out, option)
	}
	return out
}

// DefaultColoringOptions returns the fixed scheme set applied to remote
// repository loads: by chain, by residue index, by B-factor, and uniform
// gray. The first entry is the default applied when the structure loads.
func DefaultColoringOptions() []ColoringOption {
	return []ColoringOption{
		{Name: "By Chain", SchemeID: "chainid"},
		{Name: "By Residue Index", SchemeID: "residueindex"},
		{Name: "By B-Factor", SchemeID: "bfactor"},
		{Name: "Uniform Gray", SchemeID: "uniform", Params: map[string]any{"value": "gray"}},
	}
}

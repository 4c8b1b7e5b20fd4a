package color

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UniformScheme is the scheme id that maps a literal color value onto the
// whole structure.
const UniformScheme = "uniform"

// grayValue is the neutral fallback color applied when no coloring option
// is available or a representation swap fails.
const grayValue = "gray"

// Kind discriminates the shapes a color parameter takes on the wire.
type Kind int

const (
	// KindNamed is a bare scheme id string.
	KindNamed Kind = iota
	// KindLiteral is a literal color value (name or hex string).
	KindLiteral
	// KindComposite is a scheme id plus tuning parameters.
	KindComposite
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindComposite:
		return "composite"
	default:
		return "named"
	}
}

// Param is the color parameter handed to the render engine when a
// representation is added. It is an explicit tagged variant so renderers
// never duck-type between strings and composite objects.
type Param struct {
	kind   Kind
	scheme string
	value  string
	params map[string]any
}

// Named returns a parameter that is the bare scheme id.
func Named(schemeID string) Param {
	return Param{kind: KindNamed, scheme: schemeID}
}

// Literal returns a parameter carrying a literal color value.
func Literal(value string) Param {
	return Param{kind: KindLiteral, value: value}
}

// Composite returns a parameter pairing a scheme id with tuning params.
func Composite(schemeID string, params map[string]any) Param {
	copied := make(map[string]any, len(params))
	for key, value := range params {
		copied[key] = value
	}
	return Param{kind: KindComposite, scheme: schemeID, params: copied}
}

// Gray is the neutral fallback parameter.
func Gray() Param {
	return Literal(grayValue)
}

// Resolve is the single conversion point from a scheme id and optional
// params to a color parameter. The rule is applied identically at initial
// load and at every subsequent coloring change:
//
//  1. uniform scheme with a params value → that literal value
//  2. non-empty params → composite of scheme id and params
//  3. otherwise → the bare scheme id
func Resolve(schemeID string, params map[string]any) Param {
	if schemeID == UniformScheme {
		if value, ok := params["value"]; ok && value != nil {
			if literal := colorString(value); literal != "" {
				return Literal(literal)
			}
		}
	}
	if len(params) > 0 {
		return Composite(schemeID, params)
	}
	return Named(schemeID)
}

func colorString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Kind reports the variant tag.
func (p Param) Kind() Kind {
	return p.kind
}

// Scheme returns the scheme id for named and composite parameters.
func (p Param) Scheme() string {
	return p.scheme
}

// Value returns the literal color for literal parameters.
func (p Param) Value() string {
	return p.value
}

// Params returns a copy of the tuning parameters for composite parameters.
func (p Param) Params() map[string]any {
	if len(p.params) == 0 {
		return nil
	}
	out := make(map[string]any, len(p.params))
	for key, value := range p.params {
		out[key] = value
	}
	return out
}

// IsZero reports whether the parameter was never populated.
func (p Param) IsZero() bool {
	return p.kind == KindNamed && p.scheme == ""
}

// MarshalJSON emits the wire shape the render engine understands: a bare
// string for named and literal parameters, or an object merging the scheme
// id with the tuning params for composite ones.
func (p Param) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case KindLiteral:
		return json.Marshal(p.value)
	case KindComposite:
		merged := make(map[string]any, len(p.params)+1)
		for key, value := range p.params {
			merged[key] = value
		}
		merged["scheme"] = p.scheme
		return json.Marshal(merged)
	default:
		return json.Marshal(p.scheme)
	}
}

// String renders the parameter for logs and templates.
func (p Param) String() string {
	data, err := p.MarshalJSON()
	if err != nil {
		return ""
	}
	return strings.Trim(string(data), `"`)
}

package vanilla

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	valuePolicyOnce sync.Once
	valuePolicy     *bluemonday.Policy
)

// sanitizeValueMarkup keeps harmless inline markup in metadata values
// (sub/sup show up in chemistry notation, e.g. Ca2+ or H2O) and strips
// everything else before the value is injected into the info panel.
func sanitizeValueMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(valueSanitizer().Sanitize(trimmed))
}

func valueSanitizer() *bluemonday.Policy {
	valuePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("em", "strong", "b", "i", "sub", "sup", "span")
		policy.AllowAttrs("class").OnElements("span")
		valuePolicy = policy
	})
	return valuePolicy
}

// displayValue coerces an arbitrary metadata value into its display
// string. Numbers decoded as json.Number render verbatim.
func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprint(v)
	}
}

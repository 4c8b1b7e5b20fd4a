package vanilla

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

type rendererTheme struct {
	Name         string
	Variant      string
	Tokens       map[string]string
	CSSVars      map[string]string
	CSSVarsStyle string
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Tokens:  copyStringMap(cfg.Tokens),
		CSSVars: copyStringMap(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

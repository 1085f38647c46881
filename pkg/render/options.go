package render

import (
	"html"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Options describe per-request rendering inputs that customise output without
// touching the bound form: submission metadata, hidden inputs, server-side
// errors to redisplay and an optional theme.
type Options struct {
	// Method overrides the submission method. Defaults to POST.
	Method string
	// Action is the submission target URL. Empty submits to the current URL.
	Action string
	// Hidden inputs emitted alongside the visible fields, e.g. a CSRF token.
	// Rendered sorted by name for deterministic markup.
	Hidden map[string]string
	// Errors adds server-side messages keyed by field name on top of the
	// messages already recorded on the fields themselves.
	Errors map[string][]string
	// Theme resolves chrome classes from go-theme tokens and emits the
	// theme's CSS variables ahead of the form.
	Theme *theme.RendererConfig
	// Templates overrides the built-in control markup per control kind
	// ("input", "textarea", "checkbox", "select", "group") with pongo2
	// template source.
	Templates map[string]string
	// SubmitLabel overrides the submit button text. Defaults to "Submit".
	SubmitLabel string
}

// chrome holds the resolved CSS classes for field markup. Defaults follow the
// library's stock styling; theme tokens override per slot.
type chrome struct {
	field       string
	label       string
	control     string
	description string
	errorText   string
	submit      string
}

func resolveChrome(cfg *theme.RendererConfig) chrome {
	c := chrome{
		field:       "grid gap-2",
		label:       "text-sm font-medium text-gray-900",
		description: "text-sm text-gray-500",
		errorText:   "text-sm text-red-600",
		submit:      "inline-flex items-center rounded px-4 py-2",
	}
	if cfg == nil || len(cfg.Tokens) == 0 {
		return c
	}
	if v := cfg.Tokens["field.class"]; v != "" {
		c.field = v
	}
	if v := cfg.Tokens["label.class"]; v != "" {
		c.label = v
	}
	if v := cfg.Tokens["control.class"]; v != "" {
		c.control = v
	}
	if v := cfg.Tokens["description.class"]; v != "" {
		c.description = v
	}
	if v := cfg.Tokens["error.class"]; v != "" {
		c.errorText = v
	}
	if v := cfg.Tokens["submit.class"]; v != "" {
		c.submit = v
	}
	return c
}

// cssVarsStyle emits the theme's CSS variables as a :root style block so the
// chrome classes can reference them. Empty when no theme or no vars.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	names := make([]string, 0, len(cfg.CSSVars))
	for name := range cfg.CSSVars {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString("<style>:root{")
	for _, name := range names {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(":")
		builder.WriteString(html.EscapeString(cfg.CSSVars[name]))
		builder.WriteString(";")
	}
	builder.WriteString("}</style>")
	return builder.String()
}

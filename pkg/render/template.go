package render

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formfield/pkg/forms"
)

var (
	templateCacheMu sync.RWMutex
	templateCache   = make(map[string]*pongo2.Template)
)

// renderTemplated renders a control through the caller-supplied pongo2
// override for its kind, falling back to the built-in markup when no override
// is configured.
func renderTemplated(kind string, field forms.Field, opts Options, fallback func() string) (string, error) {
	source, ok := opts.Templates[kind]
	if !ok || source == "" {
		return fallback(), nil
	}
	return renderTemplate(source, templateContext(field))
}

func renderTemplate(source string, ctx map[string]any) (string, error) {
	tmpl, err := compileTemplate(source)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("render: execute template: %w", err)
	}
	return out, nil
}

func compileTemplate(source string) (*pongo2.Template, error) {
	templateCacheMu.RLock()
	tmpl, ok := templateCache[source]
	templateCacheMu.RUnlock()
	if ok {
		return tmpl, nil
	}

	templateCacheMu.Lock()
	defer templateCacheMu.Unlock()
	if tmpl, ok := templateCache[source]; ok {
		return tmpl, nil
	}

	tmpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("render: parse template: %w", err)
	}
	templateCache[source] = tmpl
	return tmpl, nil
}

// templateContext exposes the field to override templates through plain
// values; concrete capabilities map to optional keys.
func templateContext(field forms.Field) map[string]any {
	ctx := map[string]any{
		"name":        field.Name(),
		"id":          field.ID(),
		"label":       field.Label(),
		"description": field.Description(),
		"errors":      field.Errors(),
	}

	if v, ok := field.(interface{ RawValue() string }); ok {
		ctx["value"] = v.RawValue()
	}
	if v, ok := field.(interface{ Placeholder() string }); ok {
		ctx["placeholder"] = v.Placeholder()
	}
	if b, ok := field.(*forms.BooleanField); ok {
		ctx["checked"] = b.Bool()
	}
	if provider, ok := field.(forms.ChoiceProvider); ok {
		choices := provider.Choices()
		rows := make([]map[string]any, 0, len(choices))
		for _, choice := range choices {
			rows = append(rows, map[string]any{
				"value":    choice.Value,
				"label":    choice.Label,
				"selected": choice.Selected,
			})
		}
		ctx["choices"] = rows
	}
	return ctx
}

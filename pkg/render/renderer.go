// Package render turns bound forms into HTML. Output is plain markup built
// with a strings.Builder; every dynamic value is escaped, rich help text is
// sanitized, and chrome classes can be swapped through go-theme tokens.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formfield/pkg/forms"
)

// Form renders the whole form element: hidden inputs, every field in
// declaration order and a submit button.
func Form(form *forms.Form, opts Options) (string, error) {
	if form == nil {
		return "", fmt.Errorf("render: form is nil")
	}

	classes := resolveChrome(opts.Theme)

	var builder strings.Builder
	if style := cssVarsStyle(opts.Theme); style != "" {
		builder.WriteString(style)
		builder.WriteByte('\n')
	}

	method := strings.ToUpper(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "POST"
	}
	browserMethod := method
	if method != "GET" && method != "POST" {
		// Browsers only submit GET/POST; tunnel the real verb.
		browserMethod = "POST"
	}

	builder.WriteString(`<form method="`)
	builder.WriteString(html.EscapeString(browserMethod))
	builder.WriteString(`"`)
	if action := strings.TrimSpace(opts.Action); action != "" {
		builder.WriteString(` action="`)
		builder.WriteString(html.EscapeString(action))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")

	hidden := opts.Hidden
	if browserMethod != method {
		hidden = MergeHiddenFields(hidden, Hidden("_method", method))
	}
	for _, field := range SortedHiddenFields(hidden) {
		builder.WriteString(`    <input type="hidden" name="`)
		builder.WriteString(html.EscapeString(field.Name))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(field.Value))
		builder.WriteString("\">\n")
	}

	for _, field := range form.Fields() {
		markup, err := renderField(field, classes, opts)
		if err != nil {
			return "", err
		}
		writeIndented(&builder, markup)
	}

	submitLabel := opts.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}
	builder.WriteString(`    <button type="submit" class="`)
	builder.WriteString(html.EscapeString(classes.submit))
	builder.WriteString(`">`)
	builder.WriteString(html.EscapeString(submitLabel))
	builder.WriteString("</button>\n")

	builder.WriteString("</form>\n")
	return builder.String(), nil
}

// Field renders a single field block: label, control, help text and errors.
func Field(field forms.Field, opts Options) (string, error) {
	return renderField(field, resolveChrome(opts.Theme), opts)
}

func renderField(field forms.Field, classes chrome, opts Options) (string, error) {
	if field == nil {
		return "", fmt.Errorf("render: field is nil")
	}

	control, err := renderControl(field, classes, opts)
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", field.Name(), err)
	}

	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="`)
	builder.WriteString(html.EscapeString(classes.field))
	builder.WriteString("\">\n")

	if label := strings.TrimSpace(field.Label()); label != "" {
		builder.WriteString(`    <label for="`)
		builder.WriteString(html.EscapeString(field.ID()))
		builder.WriteString(`" class="`)
		builder.WriteString(html.EscapeString(classes.label))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(label))
		builder.WriteString("</label>\n")
	}

	writeIndented(&builder, control)

	if desc := strings.TrimSpace(field.Description()); desc != "" {
		builder.WriteString(`    <small class="`)
		builder.WriteString(html.EscapeString(classes.description))
		builder.WriteString(`">`)
		builder.WriteString(SanitizeRichText(desc))
		builder.WriteString("</small>\n")
	}

	for _, msg := range fieldMessages(field, opts) {
		builder.WriteString(`    <small class="`)
		builder.WriteString(html.EscapeString(classes.errorText))
		builder.WriteString(`" data-validation="error">`)
		builder.WriteString(html.EscapeString(msg))
		builder.WriteString("</small>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String(), nil
}

func renderControl(field forms.Field, classes chrome, opts Options) (string, error) {
	switch f := field.(type) {
	case forms.Group:
		return renderGroup(field, f, classes, opts)
	case *forms.TextAreaField:
		return renderTemplated("textarea", field, opts, func() string {
			return textareaMarkup(field, f.RawValue(), f.Placeholder(), classes)
		})
	case *forms.BooleanField:
		return renderTemplated("checkbox", field, opts, func() string {
			return checkboxMarkup(field, f.Bool(), classes)
		})
	case *forms.IntegerField:
		return renderTemplated("input", field, opts, func() string {
			return inputMarkup(field, "number", f.RawValue(), f.Placeholder(), classes)
		})
	case *forms.NumberField:
		return renderTemplated("input", field, opts, func() string {
			return inputMarkup(field, "number", f.RawValue(), f.Placeholder(), classes)
		})
	}

	if provider, ok := field.(forms.ChoiceProvider); ok {
		return renderTemplated("select", field, opts, func() string {
			return selectMarkup(field, provider.Choices(), classes)
		})
	}

	raw, placeholder := "", ""
	if v, ok := field.(interface{ RawValue() string }); ok {
		raw = v.RawValue()
	}
	if v, ok := field.(interface{ Placeholder() string }); ok {
		placeholder = v.Placeholder()
	}
	return renderTemplated("input", field, opts, func() string {
		return inputMarkup(field, "text", raw, placeholder, classes)
	})
}

func renderGroup(field forms.Field, group forms.Group, classes chrome, opts Options) (string, error) {
	entries := make([]string, 0, len(group.Entries()))
	for _, entry := range group.Entries() {
		markup, err := renderField(entry, classes, opts)
		if err != nil {
			return "", err
		}
		entries = append(entries, markup)
	}

	if source, ok := opts.Templates["group"]; ok && source != "" {
		return renderTemplate(source, map[string]any{
			"name":    field.Name(),
			"id":      field.ID(),
			"label":   field.Label(),
			"entries": entries,
		})
	}

	var builder strings.Builder
	builder.WriteString("<fieldset>\n")
	for _, markup := range entries {
		writeIndented(&builder, markup)
	}
	builder.WriteString("</fieldset>\n")
	return builder.String(), nil
}

func inputMarkup(field forms.Field, inputType, value, placeholder string, classes chrome) string {
	var builder strings.Builder
	builder.WriteString(`<input type="`)
	builder.WriteString(inputType)
	builder.WriteString(`" id="`)
	builder.WriteString(html.EscapeString(field.ID()))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name()))
	builder.WriteString(`"`)
	if value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	if placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	if classes.control != "" {
		builder.WriteString(` class="`)
		builder.WriteString(html.EscapeString(classes.control))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")
	return builder.String()
}

func textareaMarkup(field forms.Field, value, placeholder string, classes chrome) string {
	var builder strings.Builder
	builder.WriteString(`<textarea id="`)
	builder.WriteString(html.EscapeString(field.ID()))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name()))
	builder.WriteString(`"`)
	if placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	if classes.control != "" {
		builder.WriteString(` class="`)
		builder.WriteString(html.EscapeString(classes.control))
		builder.WriteString(`"`)
	}
	builder.WriteString(">")
	builder.WriteString(html.EscapeString(value))
	builder.WriteString("</textarea>\n")
	return builder.String()
}

func checkboxMarkup(field forms.Field, checked bool, classes chrome) string {
	var builder strings.Builder
	builder.WriteString(`<input type="checkbox" id="`)
	builder.WriteString(html.EscapeString(field.ID()))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name()))
	builder.WriteString(`" value="true"`)
	if checked {
		builder.WriteString(" checked")
	}
	if classes.control != "" {
		builder.WriteString(` class="`)
		builder.WriteString(html.EscapeString(classes.control))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")
	return builder.String()
}

func selectMarkup(field forms.Field, choices []forms.Choice, classes chrome) string {
	var builder strings.Builder
	builder.WriteString(`<select id="`)
	builder.WriteString(html.EscapeString(field.ID()))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(field.Name()))
	builder.WriteString(`"`)
	if classes.control != "" {
		builder.WriteString(` class="`)
		builder.WriteString(html.EscapeString(classes.control))
		builder.WriteString(`"`)
	}
	builder.WriteString(">\n")
	for _, choice := range choices {
		builder.WriteString(`    <option value="`)
		builder.WriteString(html.EscapeString(choice.Value))
		builder.WriteString(`"`)
		if choice.Selected {
			builder.WriteString(" selected")
		}
		builder.WriteString(">")
		builder.WriteString(html.EscapeString(choice.Label))
		builder.WriteString("</option>\n")
	}
	builder.WriteString("</select>\n")
	return builder.String()
}

func fieldMessages(field forms.Field, opts Options) []string {
	messages := append([]string(nil), field.Errors()...)
	if opts.Errors != nil {
		messages = append(messages, opts.Errors[field.Name()]...)
	}

	seen := make(map[string]struct{}, len(messages))
	out := messages[:0]
	for _, msg := range messages {
		trimmed := strings.TrimSpace(msg)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func writeIndented(builder *strings.Builder, markup string) {
	for _, line := range strings.Split(markup, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("    ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}
}

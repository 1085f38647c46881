package forms

import (
	"net/url"
	"strings"
	"unicode"
)

// Field is the lifecycle contract every form input implements: bind from
// submitted data or an existing object (Process), check the bound value
// (Validate), expose it back to the caller (Data). Instances are request
// scoped and never shared across concurrent requests.
type Field interface {
	Name() string
	ID() string
	Label() string
	Description() string

	// Process binds the field from submitted form data or, when the field's
	// key is absent from formdata, from the supplied object value. A nil
	// formdata means the form was constructed unbound. Coercion failures are
	// recorded as field errors rather than returned.
	Process(formdata url.Values, data any) error

	// Validate runs the field's validators against the bound value. Errors
	// accumulate on the field and are reported through Errors.
	Validate(form *Form) error

	// Data returns the processed value, suitable for re-assignment to the
	// caller's object. Nil when the field is unset.
	Data() any

	Errors() []string
}

// Validator checks a bound field in the context of its parent form.
type Validator func(form *Form, field Field) error

// Constructor builds a bound field instance with the given name and label.
// It is the unbound-field prototype used by container fields such as
// DictField to stamp out one subfield per entry.
type Constructor func(name, label string) Field

// FieldOption mutates common field metadata during construction.
type FieldOption func(*BaseField)

// WithLabel overrides the label derived from the field name.
func WithLabel(label string) FieldOption {
	return func(b *BaseField) {
		b.label = label
	}
}

// WithID overrides the control id derived from the field name.
func WithID(id string) FieldOption {
	return func(b *BaseField) {
		b.id = strings.TrimSpace(id)
	}
}

// WithDescription attaches help text rendered under the control.
func WithDescription(desc string) FieldOption {
	return func(b *BaseField) {
		b.description = desc
	}
}

// WithPlaceholder sets the control placeholder.
func WithPlaceholder(placeholder string) FieldOption {
	return func(b *BaseField) {
		b.placeholder = placeholder
	}
}

// WithDefault sets the value used when neither submitted data nor an object
// value is available.
func WithDefault(value any) FieldOption {
	return func(b *BaseField) {
		b.defaultValue = value
	}
}

// WithValidators appends validators run by Validate.
func WithValidators(validators ...Validator) FieldOption {
	return func(b *BaseField) {
		for _, v := range validators {
			if v == nil {
				continue
			}
			b.validators = append(b.validators, v)
		}
	}
}

// BaseField carries the metadata and error state shared by every field type.
// Concrete fields embed it and implement Process/Validate on top.
type BaseField struct {
	name         string
	id           string
	label        string
	description  string
	placeholder  string
	defaultValue any
	validators   []Validator

	data any
	raw  string
	errs []string
}

func newBaseField(name string, options ...FieldOption) BaseField {
	b := BaseField{name: strings.TrimSpace(name)}
	for _, opt := range options {
		if opt != nil {
			opt(&b)
		}
	}
	if b.id == "" {
		b.id = "ff-" + b.name
	}
	if b.label == "" {
		b.label = humanizeLabel(b.name)
	}
	return b
}

// Name reports the wire name used to look up submitted values.
func (b *BaseField) Name() string { return b.name }

// ID reports the control id used by rendered markup.
func (b *BaseField) ID() string { return b.id }

// Label reports the display label.
func (b *BaseField) Label() string { return b.label }

// Description reports the help text, if any.
func (b *BaseField) Description() string { return b.description }

// Placeholder reports the control placeholder, if any.
func (b *BaseField) Placeholder() string { return b.placeholder }

// Default reports the configured fallback value.
func (b *BaseField) Default() any { return b.defaultValue }

// Data returns the bound value, nil when unset.
func (b *BaseField) Data() any { return b.data }

// SetData overrides the bound value directly, bypassing coercion.
func (b *BaseField) SetData(value any) { b.data = value }

// RawValue returns the submitted text as received, kept for redisplay when
// coercion failed.
func (b *BaseField) RawValue() string { return b.raw }

// Errors returns the messages recorded by Process and Validate.
func (b *BaseField) Errors() []string { return b.errs }

// SetLabel replaces the display label. Used by UI schema overlays.
func (b *BaseField) SetLabel(label string) {
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		b.label = trimmed
	}
}

// SetDescription replaces the help text.
func (b *BaseField) SetDescription(desc string) { b.description = desc }

// SetPlaceholder replaces the control placeholder.
func (b *BaseField) SetPlaceholder(placeholder string) { b.placeholder = placeholder }

func (b *BaseField) resetState() {
	b.data = nil
	b.raw = ""
	b.errs = nil
}

func (b *BaseField) addError(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	b.errs = append(b.errs, msg)
}

func (b *BaseField) runValidators(form *Form, field Field) {
	for _, validate := range b.validators {
		if err := validate(form, field); err != nil {
			b.addError(err.Error())
		}
	}
}

func (b *BaseField) validationResult() error {
	if len(b.errs) == 0 {
		return nil
	}
	return &FieldError{Name: b.name, Messages: append([]string(nil), b.errs...)}
}

// submittedValue returns the first submitted value for the field's name and
// whether the key was present at all.
func (b *BaseField) submittedValue(formdata url.Values) (string, bool) {
	if formdata == nil {
		return "", false
	}
	values, ok := formdata[b.name]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

func humanizeLabel(name string) string {
	if name == "" {
		return ""
	}
	replaced := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	words := strings.Fields(replaced)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

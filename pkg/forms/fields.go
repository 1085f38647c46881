package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Choice is one selectable option as rendered: wire value, display label and
// whether it matches the currently bound value.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// ChoiceProvider is implemented by select-style fields. Renderers and prompt
// drivers use it instead of depending on concrete field types.
type ChoiceProvider interface {
	Choices() []Choice
}

// Group is implemented by container fields owning ordered child fields.
type Group interface {
	Entries() []Field
}

// StringField binds a single line of text.
type StringField struct {
	BaseField
}

// NewString constructs a text input field.
func NewString(name string, options ...FieldOption) *StringField {
	return &StringField{BaseField: newBaseField(name, options...)}
}

// StringPrototype returns a Constructor stamping out StringFields, for use as
// a DictField subfield prototype.
func StringPrototype(options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewString(name, opts...)
	}
}

func (f *StringField) Process(formdata url.Values, data any) error {
	f.resetState()
	if raw, ok := f.submittedValue(formdata); ok {
		f.raw = raw
		f.data = raw
		return nil
	}
	if data != nil {
		f.data = fmt.Sprint(data)
		f.raw = fmt.Sprint(data)
		return nil
	}
	if f.defaultValue != nil {
		f.data = fmt.Sprint(f.defaultValue)
		f.raw = fmt.Sprint(f.defaultValue)
	}
	return nil
}

func (f *StringField) Validate(form *Form) error {
	f.runValidators(form, f)
	return f.validationResult()
}

// String returns the bound text, empty when unset.
func (f *StringField) String() string {
	if f.data == nil {
		return ""
	}
	return f.data.(string)
}

// TextAreaField binds multi-line text. It shares StringField semantics and
// exists so renderers can pick the right control.
type TextAreaField struct {
	StringField
}

// NewTextArea constructs a multi-line text field.
func NewTextArea(name string, options ...FieldOption) *TextAreaField {
	return &TextAreaField{StringField{BaseField: newBaseField(name, options...)}}
}

// TextAreaPrototype returns a Constructor stamping out TextAreaFields.
func TextAreaPrototype(options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewTextArea(name, opts...)
	}
}

// IntegerField binds a base-10 integer.
type IntegerField struct {
	BaseField
}

// NewInteger constructs an integer input field.
func NewInteger(name string, options ...FieldOption) *IntegerField {
	return &IntegerField{BaseField: newBaseField(name, options...)}
}

// IntegerPrototype returns a Constructor stamping out IntegerFields.
func IntegerPrototype(options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewInteger(name, opts...)
	}
}

func (f *IntegerField) Process(formdata url.Values, data any) error {
	f.resetState()
	if raw, ok := f.submittedValue(formdata); ok {
		f.raw = raw
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			f.addError("not a valid integer")
			return nil
		}
		f.data = parsed
		return nil
	}
	source := data
	if source == nil {
		source = f.defaultValue
	}
	if source == nil {
		return nil
	}
	switch v := source.(type) {
	case int:
		f.data = int64(v)
	case int32:
		f.data = int64(v)
	case int64:
		f.data = v
	case float64:
		f.data = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			f.addError("not a valid integer")
			return nil
		}
		f.data = parsed
	default:
		f.addError(fmt.Sprintf("cannot bind %T as integer", source))
		return nil
	}
	f.raw = fmt.Sprint(f.data)
	return nil
}

func (f *IntegerField) Validate(form *Form) error {
	f.runValidators(form, f)
	return f.validationResult()
}

// Int returns the bound integer and whether the field holds one.
func (f *IntegerField) Int() (int64, bool) {
	v, ok := f.data.(int64)
	return v, ok
}

// NumberField binds a floating point number.
type NumberField struct {
	BaseField
}

// NewNumber constructs a numeric input field.
func NewNumber(name string, options ...FieldOption) *NumberField {
	return &NumberField{BaseField: newBaseField(name, options...)}
}

// NumberPrototype returns a Constructor stamping out NumberFields.
func NumberPrototype(options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewNumber(name, opts...)
	}
}

func (f *NumberField) Process(formdata url.Values, data any) error {
	f.resetState()
	if raw, ok := f.submittedValue(formdata); ok {
		f.raw = raw
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			f.addError("not a valid number")
			return nil
		}
		f.data = parsed
		return nil
	}
	source := data
	if source == nil {
		source = f.defaultValue
	}
	if source == nil {
		return nil
	}
	switch v := source.(type) {
	case float64:
		f.data = v
	case float32:
		f.data = float64(v)
	case int:
		f.data = float64(v)
	case int64:
		f.data = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			f.addError("not a valid number")
			return nil
		}
		f.data = parsed
	default:
		f.addError(fmt.Sprintf("cannot bind %T as number", source))
		return nil
	}
	f.raw = fmt.Sprint(f.data)
	return nil
}

func (f *NumberField) Validate(form *Form) error {
	f.runValidators(form, f)
	return f.validationResult()
}

// Float returns the bound number and whether the field holds one.
func (f *NumberField) Float() (float64, bool) {
	v, ok := f.data.(float64)
	return v, ok
}

// BooleanField binds a checkbox-style flag. Any of "true", "on", "1", "yes"
// counts as set; an absent key on a submitted form means false.
type BooleanField struct {
	BaseField
	submitted bool
}

// NewBoolean constructs a checkbox field.
func NewBoolean(name string, options ...FieldOption) *BooleanField {
	return &BooleanField{BaseField: newBaseField(name, options...)}
}

// BooleanPrototype returns a Constructor stamping out BooleanFields.
func BooleanPrototype(options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewBoolean(name, opts...)
	}
}

func (f *BooleanField) Process(formdata url.Values, data any) error {
	f.resetState()
	f.submitted = false
	if raw, ok := f.submittedValue(formdata); ok {
		f.submitted = true
		f.raw = raw
		f.data = parseBool(raw)
		return nil
	}
	if formdata != nil {
		// Browsers omit unchecked checkboxes entirely.
		f.submitted = true
		f.data = false
		return nil
	}
	source := data
	if source == nil {
		source = f.defaultValue
	}
	if source == nil {
		return nil
	}
	switch v := source.(type) {
	case bool:
		f.data = v
	case string:
		f.data = parseBool(v)
	default:
		f.addError(fmt.Sprintf("cannot bind %T as boolean", source))
	}
	return nil
}

func (f *BooleanField) Validate(form *Form) error {
	f.runValidators(form, f)
	return f.validationResult()
}

// Bool returns the bound flag, false when unset.
func (f *BooleanField) Bool() bool {
	v, _ := f.data.(bool)
	return v
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes", "y":
		return true
	default:
		return false
	}
}

// SelectField binds one choice out of a fixed set of string values.
type SelectField struct {
	BaseField
	choices []Choice
}

// NewSelect constructs a select field with the given choices. The Selected
// flag on supplied choices is ignored; selection is derived from the bound
// value.
func NewSelect(name string, choices []Choice, options ...FieldOption) *SelectField {
	f := &SelectField{BaseField: newBaseField(name, options...)}
	for _, c := range choices {
		f.choices = append(f.choices, Choice{Value: c.Value, Label: c.Label})
	}
	return f
}

// SelectPrototype returns a Constructor stamping out SelectFields sharing one
// choice set.
func SelectPrototype(choices []Choice, options ...FieldOption) Constructor {
	return func(name, label string) Field {
		opts := append([]FieldOption{WithLabel(label)}, options...)
		return NewSelect(name, choices, opts...)
	}
}

func (f *SelectField) Process(formdata url.Values, data any) error {
	f.resetState()
	if raw, ok := f.submittedValue(formdata); ok {
		f.raw = raw
		if f.hasChoice(raw) {
			f.data = raw
			return nil
		}
		f.addError(ErrInvalidChoice.Error())
		return nil
	}
	source := data
	if source == nil {
		source = f.defaultValue
	}
	if source == nil {
		return nil
	}
	f.data = fmt.Sprint(source)
	f.raw = fmt.Sprint(source)
	return nil
}

func (f *SelectField) Validate(form *Form) error {
	if f.data != nil && !f.hasChoice(f.data.(string)) {
		f.addError(ErrInvalidChoice.Error())
	}
	f.runValidators(form, f)
	return f.validationResult()
}

// Choices yields (value, label, selected) tuples in declaration order.
func (f *SelectField) Choices() []Choice {
	current, _ := f.data.(string)
	out := make([]Choice, 0, len(f.choices))
	for _, c := range f.choices {
		out = append(out, Choice{
			Value:    c.Value,
			Label:    c.Label,
			Selected: f.data != nil && c.Value == current,
		})
	}
	return out
}

func (f *SelectField) hasChoice(value string) bool {
	for _, c := range f.choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Package formfield is the single entry point for declaring forms. It
// re-exports the field types and constructors from pkg/forms so application
// code can declare a form without importing the subpackages.
package formfield

import (
	"github.com/goliatone/go-formfield/pkg/forms"
)

// Field is the lifecycle contract every form input implements.
type Field = forms.Field

// Form owns an ordered set of fields for one bind/validate/extract cycle.
type Form = forms.Form

// Validator checks a bound field in the context of its parent form.
type Validator = forms.Validator

// Constructor is the unbound subfield prototype consumed by DictField.
type Constructor = forms.Constructor

// FieldOption mutates common field metadata during construction.
type FieldOption = forms.FieldOption

// Choice is one selectable option: wire value, display label, selected flag.
type Choice = forms.Choice

// DictField presents a mapping as a labeled group of per-key subfields.
type DictField = forms.DictField

// New constructs a form from the given fields.
func New(fields ...Field) (*Form, error) {
	return forms.New(fields...)
}

// NewDict constructs a dictionary field from an unbound subfield prototype.
func NewDict(name string, prototype Constructor, options ...FieldOption) *DictField {
	return forms.NewDict(name, prototype, options...)
}

// NewSelectObject constructs a select field whose option values are full
// objects; id derives the wire value per candidate, caption the label.
func NewSelectObject[T any](name string, candidates []T, id, caption func(T) string, options ...FieldOption) *forms.SelectObjectField[T] {
	return forms.NewSelectObject(name, candidates, id, caption, options...)
}

// NewString constructs a text input field.
func NewString(name string, options ...FieldOption) *forms.StringField {
	return forms.NewString(name, options...)
}

// NewTextArea constructs a multi-line text field.
func NewTextArea(name string, options ...FieldOption) *forms.TextAreaField {
	return forms.NewTextArea(name, options...)
}

// NewInteger constructs an integer input field.
func NewInteger(name string, options ...FieldOption) *forms.IntegerField {
	return forms.NewInteger(name, options...)
}

// NewNumber constructs a numeric input field.
func NewNumber(name string, options ...FieldOption) *forms.NumberField {
	return forms.NewNumber(name, options...)
}

// NewBoolean constructs a checkbox field.
func NewBoolean(name string, options ...FieldOption) *forms.BooleanField {
	return forms.NewBoolean(name, options...)
}

// NewSelect constructs a select field over string choices.
func NewSelect(name string, choices []Choice, options ...FieldOption) *forms.SelectField {
	return forms.NewSelect(name, choices, options...)
}

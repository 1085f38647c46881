package forms

import (
	"fmt"
	"net/http"
	"net/url"
)

// Form owns an ordered set of fields for one bind → validate → extract cycle.
// Construct a fresh Form per request; instances are not safe for concurrent
// use and are meant to be discarded after the cycle completes.
type Form struct {
	fields []Field
	index  map[string]Field
}

// New constructs a form from the given fields. Field names must be non-empty
// and unique.
func New(fields ...Field) (*Form, error) {
	form := &Form{index: make(map[string]Field, len(fields))}
	for _, field := range fields {
		if field == nil {
			continue
		}
		name := field.Name()
		if name == "" {
			return nil, ErrEmptyFieldName
		}
		if _, exists := form.index[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		form.fields = append(form.fields, field)
		form.index[name] = field
	}
	return form, nil
}

// Fields returns the fields in declaration order.
func (f *Form) Fields() []Field {
	return f.fields
}

// FieldByName looks up a field by its wire name.
func (f *Form) FieldByName(name string) (Field, bool) {
	field, ok := f.index[name]
	return field, ok
}

// Process binds every field from submitted form data and/or object values
// keyed by field name. Submitted data wins over object values; a nil formdata
// binds from data alone.
func (f *Form) Process(formdata url.Values, data map[string]any) error {
	for _, field := range f.fields {
		var obj any
		if data != nil {
			obj = data[field.Name()]
		}
		if err := field.Process(formdata, obj); err != nil {
			return fmt.Errorf("forms: process %q: %w", field.Name(), err)
		}
	}
	return nil
}

// BindRequest parses the request body and binds the form from it. POST, PUT
// and PATCH read the body form; other methods bind from the query string.
func (f *Form) BindRequest(r *http.Request) error {
	if r == nil {
		return fmt.Errorf("forms: request is nil")
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("forms: parse request: %w", err)
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return f.Process(r.PostForm, nil)
	default:
		return f.Process(r.Form, nil)
	}
}

// Validate runs every field's validators and reports whether the whole form
// is valid. Per-field messages are available through Errors.
func (f *Form) Validate() bool {
	valid := true
	for _, field := range f.fields {
		if err := field.Validate(f); err != nil {
			valid = false
		}
	}
	return valid
}

// Errors collects validation messages keyed by field name. Container fields
// additionally report per-entry errors under "name-key".
func (f *Form) Errors() map[string][]string {
	out := make(map[string][]string)
	for _, field := range f.fields {
		if msgs := field.Errors(); len(msgs) > 0 {
			out[field.Name()] = append([]string(nil), msgs...)
		}
		if group, ok := field.(Group); ok {
			for _, entry := range group.Entries() {
				if msgs := entry.Errors(); len(msgs) > 0 {
					out[entry.Name()] = append([]string(nil), msgs...)
				}
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Values extracts the processed value of every field, keyed by field name.
// Unset fields are omitted.
func (f *Form) Values() map[string]any {
	out := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		if value := field.Data(); value != nil {
			out[field.Name()] = value
		}
	}
	return out
}

package forms

import (
	"fmt"
	"net/url"
)

// SelectObjectField presents a single choice among a fixed set of candidate
// objects. The wire value is the string identifier derived per candidate by
// the ID accessor; the bound value is the full matching object, so extraction
// can assign it straight back to the caller's model. The Caption accessor
// derives the display label.
//
//	field := forms.NewSelectObject("owner", users,
//		func(u User) string { return strconv.Itoa(u.ID) },
//		func(u User) string { return u.Name })
//
// When two candidates derive the same identifier the first one wins.
type SelectObjectField[T any] struct {
	BaseField
	candidates []T
	id         func(T) string
	caption    func(T) string

	selected T
	bound    bool
}

// NewSelectObject constructs an object-valued select field. The candidate
// sequence keeps its order for rendering; id and caption must be non-nil.
func NewSelectObject[T any](name string, candidates []T, id, caption func(T) string, options ...FieldOption) *SelectObjectField[T] {
	return &SelectObjectField[T]{
		BaseField:  newBaseField(name, options...),
		candidates: candidates,
		id:         id,
		caption:    caption,
	}
}

// Process binds from a submitted identifier (first candidate whose derived
// identifier equals it) or, when the form is bound to an object, from a
// candidate value held directly by that object. A submitted identifier that
// matches no candidate records an invalid-choice error and leaves the field
// unset.
func (f *SelectObjectField[T]) Process(formdata url.Values, data any) error {
	f.resetState()
	var zero T
	f.selected = zero
	f.bound = false

	if f.id == nil || f.caption == nil {
		return fmt.Errorf("forms: select field %q needs id and caption accessors", f.name)
	}

	if raw, ok := f.submittedValue(formdata); ok {
		f.raw = raw
		for _, candidate := range f.candidates {
			if f.id(candidate) == raw {
				f.selected = candidate
				f.bound = true
				return nil
			}
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
	candidate, ok := source.(T)
	if !ok {
		f.addError(fmt.Sprintf("cannot bind %T as candidate object", source))
		return nil
	}
	f.selected = candidate
	f.bound = true
	f.raw = f.id(candidate)
	return nil
}

// Validate re-checks that the bound object is still one of the candidates, so
// a value assigned programmatically cannot smuggle in a non-candidate.
func (f *SelectObjectField[T]) Validate(form *Form) error {
	if f.bound && !f.hasCandidate(f.id(f.selected)) {
		f.addError(ErrInvalidChoice.Error())
	}
	f.runValidators(form, f)
	return f.validationResult()
}

// Data returns the bound candidate object, nil when unset.
func (f *SelectObjectField[T]) Data() any {
	if !f.bound {
		return nil
	}
	return f.selected
}

// Selected returns the bound candidate with its concrete type.
func (f *SelectObjectField[T]) Selected() (T, bool) {
	return f.selected, f.bound
}

// Choices yields one (identifier, label, selected) tuple per candidate, in
// candidate order.
func (f *SelectObjectField[T]) Choices() []Choice {
	current := ""
	if f.bound {
		current = f.id(f.selected)
	}
	out := make([]Choice, 0, len(f.candidates))
	for _, candidate := range f.candidates {
		value := f.id(candidate)
		out = append(out, Choice{
			Value:    value,
			Label:    f.caption(candidate),
			Selected: f.bound && value == current,
		})
	}
	return out
}

func (f *SelectObjectField[T]) hasCandidate(identifier string) bool {
	for _, candidate := range f.candidates {
		if f.id(candidate) == identifier {
			return true
		}
	}
	return false
}

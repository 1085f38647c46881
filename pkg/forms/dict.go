package forms

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// keySeparator splits the parent field name from the entry key in submitted
// control names ("attrs-color"). Entry keys therefore must not contain it.
const keySeparator = "-"

// DictField presents a mapping from key to value as a labeled group of
// independent subfields, one per key, with two-way binding. Keys double as
// entry labels. The subfield set is rebuilt on every Process call; no entry
// identity survives re-population because the key set itself may change
// between submissions.
type DictField struct {
	BaseField
	prototype Constructor

	keys    []string
	entries []Field
}

// NewDict constructs a dictionary field from an unbound subfield prototype.
//
//	attrs := forms.NewDict("attrs", forms.StringPrototype())
func NewDict(name string, prototype Constructor, options ...FieldOption) *DictField {
	return &DictField{
		BaseField: newBaseField(name, options...),
		prototype: prototype,
	}
}

// Process rebuilds the entry set. When formdata is present the keys are
// extracted from submitted control names (sorted for determinism, since form
// encodings carry no order); otherwise entries follow the iteration order of
// the bound mapping. Supported data shapes: *orderedmap.OrderedMap[string, any]
// (insertion order preserved), map[string]any and map[string]string (keys
// sorted).
func (f *DictField) Process(formdata url.Values, data any) error {
	f.resetState()
	f.keys = nil
	f.entries = nil

	if f.prototype == nil {
		return fmt.Errorf("forms: dict field %q has no subfield prototype", f.name)
	}

	if len(formdata) > 0 {
		for _, key := range f.extractKeys(formdata) {
			f.addEntry(formdata, nil, key)
		}
		return nil
	}

	source := data
	if source == nil {
		source = f.defaultValue
	}

	switch mapping := source.(type) {
	case nil:
	case *orderedmap.OrderedMap[string, any]:
		for _, key := range mapping.Keys() {
			value, _ := mapping.Get(key)
			f.addEntry(nil, value, key)
		}
	case map[string]any:
		for _, key := range sortedKeys(mapping) {
			f.addEntry(nil, mapping[key], key)
		}
	case map[string]string:
		for _, key := range sortedStringKeys(mapping) {
			f.addEntry(nil, mapping[key], key)
		}
	default:
		f.addError(fmt.Sprintf("cannot bind %T as mapping", source))
	}
	return nil
}

// Validate delegates to every entry. The dict is valid iff all entries
// validate; entry errors stay attached to the entry, keyed by the original
// key through ErrorsByKey.
func (f *DictField) Validate(form *Form) error {
	for _, entry := range f.entries {
		_ = entry.Validate(form)
	}
	f.runValidators(form, f)
	if err := f.validationResult(); err != nil {
		return err
	}
	for _, entry := range f.entries {
		if len(entry.Errors()) > 0 {
			return &FieldError{Name: f.name, Messages: []string{"one or more entries are invalid"}}
		}
	}
	return nil
}

// Data reconstructs the bound mapping from the current entries.
func (f *DictField) Data() any {
	return f.Value()
}

// Value returns the mapping from key to each entry's processed value.
func (f *DictField) Value() map[string]any {
	out := make(map[string]any, len(f.entries))
	for i, entry := range f.entries {
		out[f.keys[i]] = entry.Data()
	}
	return out
}

// OrderedValue returns the mapping with the entry order preserved.
func (f *DictField) OrderedValue() *orderedmap.OrderedMap[string, any] {
	out := orderedmap.NewOrderedMap[string, any]()
	for i, entry := range f.entries {
		out.Set(f.keys[i], entry.Data())
	}
	return out
}

// Entries returns the bound subfields in entry order.
func (f *DictField) Entries() []Field {
	return f.entries
}

// Keys returns the entry keys in entry order.
func (f *DictField) Keys() []string {
	return f.keys
}

// ErrorsByKey collects entry validation messages indexed by the original key.
func (f *DictField) ErrorsByKey() map[string][]string {
	out := make(map[string][]string)
	for i, entry := range f.entries {
		if msgs := entry.Errors(); len(msgs) > 0 {
			out[f.keys[i]] = append([]string(nil), msgs...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (f *DictField) addEntry(formdata url.Values, value any, key string) {
	if strings.Contains(key, keySeparator) {
		f.addError(fmt.Sprintf("entry %q: %s", key, ErrReservedSeparator))
		return
	}
	entry := f.prototype(f.name+keySeparator+key, key)
	_ = entry.Process(formdata, value)
	f.keys = append(f.keys, key)
	f.entries = append(f.entries, entry)
}

// extractKeys pulls the entry keys out of submitted control names. A control
// named "attrs-color-hex" belongs to entry "color"; everything after the
// second separator is the subfield's own business.
func (f *DictField) extractKeys(formdata url.Values) []string {
	prefix := f.name + keySeparator
	seen := make(map[string]struct{})
	var keys []string
	for name := range formdata {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		key := strings.SplitN(name[len(prefix):], keySeparator, 2)[0]
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedStringKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

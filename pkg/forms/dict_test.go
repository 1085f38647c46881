package forms_test

import (
	"net/url"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/forms"
	"github.com/goliatone/go-formfield/pkg/validators"
)

func TestDictFieldBindsFromMapping(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype())

	data := map[string]any{"foo": "fooval", "hi": "hival", "rawr": "rawrval"}
	if err := field.Process(nil, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	if got, want := len(field.Entries()), 3; got != want {
		t.Fatalf("entries = %d, want %d", got, want)
	}
	// Plain maps bind in sorted key order.
	if diff := cmp.Diff([]string{"foo", "hi", "rawr"}, field.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got, want := field.Entries()[1].Name(), "a-hi"; got != want {
		t.Fatalf("entry name = %q, want %q", got, want)
	}
	if got, want := field.Entries()[1].Label(), "hi"; got != want {
		t.Fatalf("entry label = %q, want %q", got, want)
	}
	if diff := cmp.Diff(data, field.Value()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDictFieldPreservesInsertionOrder(t *testing.T) {
	field := forms.NewDict("attrs", forms.StringPrototype())

	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("zebra", "z")
	data.Set("apple", "a")
	data.Set("mango", "m")

	if err := field.Process(nil, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	if diff := cmp.Diff([]string{"zebra", "apple", "mango"}, field.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"zebra", "apple", "mango"}, field.OrderedValue().Keys()); diff != "" {
		t.Fatalf("ordered value keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDictFieldBindsFromSubmission(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype())

	formdata := url.Values{
		"a-bleh": {"blehval"},
		"a-yarg": {"yargval"},
		"a-e":    {""},
		"a-mmm":  {"mmmval"},
	}
	if err := field.Process(formdata, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	if got, want := len(field.Entries()), 4; got != want {
		t.Fatalf("entries = %d, want %d", got, want)
	}
	want := map[string]any{"bleh": "blehval", "yarg": "yargval", "e": "", "mmm": "mmmval"}
	if diff := cmp.Diff(want, field.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDictFieldSubmissionWinsOverData(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype())

	formdata := url.Values{"a-a": {"a"}, "a-b": {"b"}}
	data := map[string]any{"foo": "fooval", "hi": "hival", "rawr": "rawrval"}
	if err := field.Process(formdata, data); err != nil {
		t.Fatalf("process: %v", err)
	}

	if got, want := len(field.Entries()), 2; got != want {
		t.Fatalf("entries = %d, want %d", got, want)
	}
	if diff := cmp.Diff(map[string]any{"a": "a", "b": "b"}, field.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDictFieldRepopulateReplacesEntries(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype())

	if err := field.Process(nil, map[string]any{"old": "x", "stale": "y"}); err != nil {
		t.Fatalf("first process: %v", err)
	}
	if err := field.Process(nil, map[string]any{"fresh": "z"}); err != nil {
		t.Fatalf("second process: %v", err)
	}

	if diff := cmp.Diff([]string{"fresh"}, field.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"fresh": "z"}, field.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestDictFieldValidationErrorsKeyedByKey(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype(
		forms.WithValidators(validators.Required()),
	))
	form, err := forms.New(field)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	formdata := url.Values{"a-ok": {"value"}, "a-empty": {""}}
	if err := form.Process(formdata, nil); err != nil {
		t.Fatalf("process: %v", err)
	}
	if form.Validate() {
		t.Fatal("expected validation failure")
	}

	byKey := field.ErrorsByKey()
	if _, ok := byKey["empty"]; !ok {
		t.Fatalf("errors = %v, want entry for key %q", byKey, "empty")
	}
	if _, ok := byKey["ok"]; ok {
		t.Fatalf("errors = %v, valid key %q must not appear", byKey, "ok")
	}
}

func TestDictFieldSubfieldErrorsPropagateUntouched(t *testing.T) {
	field := forms.NewDict("counts", forms.IntegerPrototype())

	formdata := url.Values{"counts-good": {"42"}, "counts-bad": {"not-a-number"}}
	if err := field.Process(formdata, nil); err != nil {
		t.Fatalf("process: %v", err)
	}
	form, err := forms.New(field)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	if form.Validate() {
		t.Fatal("expected validation failure")
	}

	byKey := field.ErrorsByKey()
	if diff := cmp.Diff(map[string][]string{"bad": {"not a valid integer"}}, byKey); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	value := field.Value()
	if got, want := value["good"], int64(42); got != want {
		t.Fatalf("value[good] = %v, want %v", got, want)
	}
}

func TestDictFieldRejectsSeparatorInKeys(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype())

	if err := field.Process(nil, map[string]any{"bad-key": "x"}); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(field.Entries()) != 0 {
		t.Fatalf("entries = %d, want 0", len(field.Entries()))
	}
	if len(field.Errors()) == 0 {
		t.Fatal("expected a field error for the reserved separator")
	}
}

func TestDictFieldDefaultMapping(t *testing.T) {
	field := forms.NewDict("a", forms.StringPrototype(),
		forms.WithDefault(map[string]any{"seed": "value"}))

	if err := field.Process(nil, nil); err != nil {
		t.Fatalf("process: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"seed": "value"}, field.Value()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

package render_test

import (
	"net/url"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formfield/pkg/forms"
	"github.com/goliatone/go-formfield/pkg/render"
)

func mustForm(t *testing.T, fields ...forms.Field) *forms.Form {
	t.Helper()
	form, err := forms.New(fields...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestFormRendersFieldsAndSubmit(t *testing.T) {
	form := mustForm(t, forms.NewString("title"))
	if err := form.Process(nil, map[string]any{"title": "Hello"}); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Form(form, render.Options{Action: "/posts"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`<form method="POST" action="/posts">`,
		`<label for="ff-title"`,
		`>Title</label>`,
		`name="title"`,
		`value="Hello"`,
		`<button type="submit"`,
		`>Submit</button>`,
		"</form>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormTunnelsNonBrowserMethods(t *testing.T) {
	form := mustForm(t, forms.NewString("title"))
	if err := form.Process(nil, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Form(form, render.Options{Method: "delete"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, `<form method="POST"`) {
		t.Fatalf("browser method must stay POST:\n%s", out)
	}
	if !strings.Contains(out, `<input type="hidden" name="_method" value="DELETE">`) {
		t.Fatalf("missing method tunnel input:\n%s", out)
	}
}

func TestFormRendersHiddenFieldsSorted(t *testing.T) {
	form := mustForm(t, forms.NewString("title"))
	if err := form.Process(nil, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Form(form, render.Options{
		Hidden: map[string]string{"zeta": "z", "_csrf": "tok", "alpha": "a"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	csrf := strings.Index(out, `name="_csrf"`)
	alpha := strings.Index(out, `name="alpha"`)
	zeta := strings.Index(out, `name="zeta"`)
	if csrf < 0 || alpha < 0 || zeta < 0 {
		t.Fatalf("missing hidden inputs:\n%s", out)
	}
	if !(csrf < alpha && alpha < zeta) {
		t.Fatalf("hidden inputs not sorted by name:\n%s", out)
	}
}

func TestFieldEscapesSubmittedValues(t *testing.T) {
	field := forms.NewString("title", forms.WithLabel(`Title & "More"`))
	if err := field.Process(url.Values{"title": {`<script>alert(1)</script>`}}, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped value leaked:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("value not escaped:\n%s", out)
	}
	if !strings.Contains(out, "Title &amp; &#34;More&#34;") {
		t.Fatalf("label not escaped:\n%s", out)
	}
}

func TestFieldSanitizesDescription(t *testing.T) {
	field := forms.NewString("bio",
		forms.WithDescription(`Keep it <strong>short</strong>.<script>alert(1)</script>`))
	if err := field.Process(nil, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, "<strong>short</strong>") {
		t.Fatalf("inline markup stripped from description:\n%s", out)
	}
	if strings.Contains(out, "script") {
		t.Fatalf("script survived sanitization:\n%s", out)
	}
}

func TestSelectRendersSelectedOption(t *testing.T) {
	field := forms.NewSelect("color", []forms.Choice{
		{Value: "red", Label: "Red"},
		{Value: "blue", Label: "Blue"},
	})
	if err := field.Process(url.Values{"color": {"blue"}}, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, `<option value="red">Red</option>`) {
		t.Fatalf("missing unselected option:\n%s", out)
	}
	if !strings.Contains(out, `<option value="blue" selected>Blue</option>`) {
		t.Fatalf("missing selected option:\n%s", out)
	}
}

func TestDictFieldRendersFieldsetInOrder(t *testing.T) {
	field := forms.NewDict("attrs", forms.StringPrototype())
	if err := field.Process(nil, map[string]any{"color": "red", "size": "xl"}); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, "<fieldset>") {
		t.Fatalf("missing fieldset wrapper:\n%s", out)
	}
	color := strings.Index(out, `name="attrs-color"`)
	size := strings.Index(out, `name="attrs-size"`)
	if color < 0 || size < 0 {
		t.Fatalf("missing entry inputs:\n%s", out)
	}
	if color > size {
		t.Fatalf("entries out of key order:\n%s", out)
	}
}

func TestThemeTokensOverrideChrome(t *testing.T) {
	form := mustForm(t, forms.NewString("title"))
	if err := form.Process(nil, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Form(form, render.Options{
		Theme: &theme.RendererConfig{
			Tokens:  map[string]string{"label.class": "custom-label", "submit.class": "custom-submit"},
			CSSVars: map[string]string{"accent": "#336699", "--radius": "4px"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, `class="custom-label"`) {
		t.Fatalf("label token not applied:\n%s", out)
	}
	if !strings.Contains(out, `class="custom-submit"`) {
		t.Fatalf("submit token not applied:\n%s", out)
	}
	if !strings.Contains(out, "<style>:root{--radius:4px;--accent:#336699;}</style>") {
		t.Fatalf("css vars block missing or unsorted:\n%s", out)
	}
}

func TestTemplateOverrideReplacesControl(t *testing.T) {
	field := forms.NewString("title")
	if err := field.Process(url.Values{"title": {"Hello"}}, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{
		Templates: map[string]string{
			"input": `<input name="{{ name }}" value="{{ value }}" data-custom>`,
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(out, `<input name="title" value="Hello" data-custom>`) {
		t.Fatalf("template override not used:\n%s", out)
	}
}

func TestFieldRedisplaysErrors(t *testing.T) {
	field := forms.NewInteger("age")
	if err := field.Process(url.Values{"age": {"forty"}}, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{
		Errors: map[string][]string{
			"age": {"not a valid integer", "value rejected upstream"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := strings.Count(out, "not a valid integer"); got != 1 {
		t.Fatalf("duplicate message rendered %d times:\n%s", got, out)
	}
	if !strings.Contains(out, "value rejected upstream") {
		t.Fatalf("caller-supplied error missing:\n%s", out)
	}
	if !strings.Contains(out, `data-validation="error"`) {
		t.Fatalf("error marker missing:\n%s", out)
	}
	if !strings.Contains(out, `value="forty"`) {
		t.Fatalf("raw value not redisplayed:\n%s", out)
	}
}

func TestBooleanRendersCheckbox(t *testing.T) {
	field := forms.NewBoolean("active")
	if err := field.Process(url.Values{"active": {"true"}}, nil); err != nil {
		t.Fatalf("process: %v", err)
	}

	out, err := render.Field(field, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<input type="checkbox" id="ff-active" name="active" value="true" checked>`) {
		t.Fatalf("checkbox markup mismatch:\n%s", out)
	}
}

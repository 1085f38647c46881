// Package openapi builds bound-able forms from OpenAPI 3 documents. The
// request body schema of an operation maps onto field types: strings become
// text inputs, enums become selects and objects declaring only
// additionalProperties become dictionary fields keyed by the caller's data.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/forms"
	"github.com/goliatone/go-formfield/pkg/validators"
)

// preferred request media types, most specific first.
var defaultMediaTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
	"application/json",
}

// BuildOptions configure document loading and schema selection.
type BuildOptions struct {
	// MediaTypes overrides the request media types considered, in preference
	// order.
	MediaTypes []string
	// ResolveReferences validates the document and resolves external refs.
	ResolveReferences bool
}

// BuildForm loads an OpenAPI document and builds a form for the request body
// of the operation with the given id.
func BuildForm(ctx context.Context, raw []byte, operationID string, opts BuildOptions) (*forms.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if opts.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}

	operation := findOperation(spec, operationID)
	if operation == nil {
		return nil, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	schema := requestSchema(operation, opts.mediaTypes())
	if schema == nil {
		return nil, fmt.Errorf("openapi: operation %q has no usable request schema", operationID)
	}
	return FormFromSchema(schema)
}

// FormFromSchema builds a form from an object schema, one field per property
// in name order.
func FormFromSchema(schema *openapi3.Schema) (*forms.Form, error) {
	if schema == nil {
		return nil, errors.New("openapi: schema is nil")
	}
	if typ := firstSchemaType(schema.Type); typ != "" && typ != "object" {
		return nil, fmt.Errorf("openapi: request schema must be an object, got %q", typ)
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]forms.Field, 0, len(names))
	for _, name := range names {
		field, err := fieldFromSchema(name, schema.Properties[name], contains(schema.Required, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return forms.New(fields...)
}

func (o BuildOptions) mediaTypes() []string {
	if len(o.MediaTypes) > 0 {
		return o.MediaTypes
	}
	return defaultMediaTypes
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range []*openapi3.Operation{
			item.Get, item.Put, item.Post, item.Delete,
			item.Patch, item.Head, item.Options, item.Trace,
		} {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation, mediaTypes []string) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range mediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func fieldFromSchema(name string, ref *openapi3.SchemaRef, required bool) (forms.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: property %q has no schema", name)
	}
	src := ref.Value

	options := commonOptions(src, required)

	if len(src.Enum) > 0 {
		return forms.NewSelect(name, enumChoices(src.Enum), options...), nil
	}

	switch typ := firstSchemaType(src.Type); typ {
	case "", "string":
		options = append(options, stringValidators(src)...)
		if src.Format == "textarea" {
			return forms.NewTextArea(name, options...), nil
		}
		return forms.NewString(name, options...), nil
	case "integer":
		options = append(options, numberValidators(src)...)
		return forms.NewInteger(name, options...), nil
	case "number":
		options = append(options, numberValidators(src)...)
		return forms.NewNumber(name, options...), nil
	case "boolean":
		return forms.NewBoolean(name, options...), nil
	case "object":
		if proto := dictPrototype(src); proto != nil {
			return forms.NewDict(name, proto, options...), nil
		}
		return nil, fmt.Errorf("openapi: property %q: object fields need additionalProperties", name)
	default:
		return nil, fmt.Errorf("openapi: property %q: unsupported schema type %q", name, typ)
	}
}

// dictPrototype maps an additionalProperties schema to a subfield prototype.
// Returns nil when the object declares fixed properties instead.
func dictPrototype(src *openapi3.Schema) forms.Constructor {
	if len(src.Properties) > 0 {
		return nil
	}
	ap := src.AdditionalProperties.Schema
	if ap == nil || ap.Value == nil {
		if src.AdditionalProperties.Has != nil && *src.AdditionalProperties.Has {
			return forms.StringPrototype()
		}
		return nil
	}

	value := ap.Value
	if len(value.Enum) > 0 {
		return forms.SelectPrototype(enumChoices(value.Enum))
	}
	switch firstSchemaType(value.Type) {
	case "integer":
		return forms.IntegerPrototype()
	case "number":
		return forms.NumberPrototype()
	case "boolean":
		return forms.BooleanPrototype()
	default:
		return forms.StringPrototype()
	}
}

func commonOptions(src *openapi3.Schema, required bool) []forms.FieldOption {
	var options []forms.FieldOption
	if src.Title != "" {
		options = append(options, forms.WithLabel(src.Title))
	}
	if src.Description != "" {
		options = append(options, forms.WithDescription(src.Description))
	}
	if src.Default != nil {
		options = append(options, forms.WithDefault(src.Default))
	}
	if required {
		options = append(options, forms.WithValidators(validators.Required()))
	}
	return options
}

func stringValidators(src *openapi3.Schema) []forms.FieldOption {
	var checks []forms.Validator
	if src.MinLength != 0 {
		checks = append(checks, validators.MinLength(int(src.MinLength)))
	}
	if src.MaxLength != nil {
		checks = append(checks, validators.MaxLength(int(*src.MaxLength)))
	}
	if src.Pattern != "" {
		checks = append(checks, validators.Pattern(src.Pattern))
	}
	if len(checks) == 0 {
		return nil
	}
	return []forms.FieldOption{forms.WithValidators(checks...)}
}

func numberValidators(src *openapi3.Schema) []forms.FieldOption {
	var checks []forms.Validator
	if src.Min != nil {
		checks = append(checks, validators.Min(*src.Min))
	}
	if src.Max != nil {
		checks = append(checks, validators.Max(*src.Max))
	}
	if len(checks) == 0 {
		return nil
	}
	return []forms.FieldOption{forms.WithValidators(checks...)}
}

func enumChoices(values []any) []forms.Choice {
	choices := make([]forms.Choice, 0, len(values))
	for _, value := range values {
		text := fmt.Sprint(value)
		choices = append(choices, forms.Choice{Value: text, Label: text})
	}
	return choices
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

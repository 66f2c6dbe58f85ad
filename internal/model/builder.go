package model

import (
	"fmt"
	"sort"
	"strings"

	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// Builder converts OpenAPI operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	if options.Labeler == nil {
		options.Labeler = DefaultLabeler
	}
	return &Builder{opts: options}
}

// Build transforms an operation's request body into a FormModel.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		ContentType: op.ContentType,
	}

	fields, err := b.fieldsFromObject(op.RequestBody)
	if err != nil {
		return FormModel{}, fmt.Errorf("model builder: %s: %w", op.ID, err)
	}
	form.Fields = fields
	return form, nil
}

func (b *Builder) fieldsFromObject(schema pkgopenapi.Schema) ([]Field, error) {
	if len(schema.Properties) == 0 {
		return nil, nil
	}

	fields := make([]Field, 0, len(schema.Properties))
	for _, name := range orderedProperties(schema) {
		field, err := b.field(name, schema.Properties[name], isRequired(schema, name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (b *Builder) field(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	field := Field{
		Name:        name,
		Type:        mapType(schema),
		Format:      schema.Format,
		Required:    required,
		Label:       b.opts.Labeler(name),
		Description: schema.Description,
	}

	switch field.Type {
	case FieldTypeObject:
		nested, err := b.fieldsFromObject(schema)
		if err != nil {
			return Field{}, err
		}
		field.Nested = nested
	case FieldTypeArray:
		if schema.Items == nil {
			return Field{}, fmt.Errorf("array field %q missing items", name)
		}
		item, err := b.field(name+"Item", *schema.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &item
	}
	return field, nil
}

// orderedProperties lists required properties in authored order, then the
// remaining properties sorted by name.
func orderedProperties(schema pkgopenapi.Schema) []string {
	out := make([]string, 0, len(schema.Properties))
	seen := make(map[string]struct{}, len(schema.Properties))
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}

	rest := make([]string, 0, len(schema.Properties)-len(out))
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func isRequired(schema pkgopenapi.Schema, name string) bool {
	for _, candidate := range schema.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

func mapType(schema pkgopenapi.Schema) FieldType {
	switch schema.Type {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	case "object":
		return FieldTypeObject
	case "":
		if len(schema.Properties) > 0 {
			return FieldTypeObject
		}
		return FieldTypeString
	default:
		return FieldTypeString
	}
}

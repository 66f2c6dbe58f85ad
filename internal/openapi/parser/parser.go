package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	if len(options.ContentTypes) == 0 {
		options.ContentTypes = append([]string(nil), pkgopenapi.DefaultContentTypes...)
	}
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an id are keyed as "method:path" with a lower-case method.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: p.options.ResolveReferences,
	}

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		p.collectOperation(ctx, operations, "POST", path, item.Post)
		p.collectOperation(ctx, operations, "PUT", path, item.Put)
		p.collectOperation(ctx, operations, "PATCH", path, item.Patch)
		p.collectOperation(ctx, operations, "GET", path, item.Get)
		p.collectOperation(ctx, operations, "DELETE", path, item.Delete)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func (p *Parser) collectOperation(ctx context.Context, target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if ctx.Err() != nil || operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	contentType, requestSchema := p.extractRequestSchema(operation.RequestBody)
	op, err := pkgopenapi.NewOperation(opID, method, path, requestSchema)
	if err != nil {
		// Invalid operations are skipped.
		return
	}
	op.Summary = operation.Summary
	op.ContentType = contentType
	target[opID] = op
}

func (p *Parser) extractRequestSchema(requestBody *openapi3.RequestBodyRef) (string, pkgopenapi.Schema) {
	if requestBody == nil {
		return "", pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return "", pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range p.options.ContentTypes {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return mediaType, convertSchema(mt.Schema, nil)
		}
	}
	return "", pkgopenapi.Schema{}
}

// convertSchema copies the parts of a kin-openapi schema the form model needs.
// Reference cycles stop at the repeated $ref, which is kept unresolved.
func convertSchema(ref *openapi3.SchemaRef, stack []string) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	if ref.Ref != "" {
		for _, seen := range stack {
			if seen == ref.Ref {
				return pkgopenapi.Schema{Ref: ref.Ref}
			}
		}
		stack = append(stack, ref.Ref)
	}

	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Properties) > 0 {
		schema.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			schema.Properties[name] = convertSchema(property, stack)
		}
	}
	if src.Items != nil {
		items := convertSchema(src.Items, stack)
		schema.Items = &items
	}
	return schema
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

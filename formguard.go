// Package formguard wires the OpenAPI loader and parser implementations to
// the form model so callers can derive the required fields of a submission
// endpoint from its request body schema.
package formguard

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-formguard/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formguard/internal/openapi/parser"
	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// ErrOperationNotFound is returned when a document has no operation with the
// requested id.
var ErrOperationNotFound = errors.New("formguard: operation not found")

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// FormBuilder loads documents and builds the form model of one operation.
type FormBuilder struct {
	Loader  pkgopenapi.Loader
	Parser  pkgopenapi.Parser
	Builder model.Builder
}

// NewFormBuilder returns a FormBuilder using the default implementations.
// Loader options enable fs or HTTP sources.
func NewFormBuilder(options ...pkgopenapi.LoaderOption) *FormBuilder {
	return &FormBuilder{
		Loader:  NewLoader(options...),
		Parser:  NewParser(),
		Builder: model.NewBuilder(),
	}
}

// Form loads src and builds the form model for operationID.
func (b *FormBuilder) Form(ctx context.Context, src pkgopenapi.Source, operationID string) (model.FormModel, error) {
	if b == nil || b.Loader == nil || b.Parser == nil || b.Builder == nil {
		return model.FormModel{}, errors.New("formguard: form builder is not configured")
	}
	doc, err := b.Loader.Load(ctx, src)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("formguard: load %s: %w", locationOf(src), err)
	}
	operations, err := b.Parser.Operations(ctx, doc)
	if err != nil {
		return model.FormModel{}, err
	}
	op, ok := operations[operationID]
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w: %q in %s", ErrOperationNotFound, operationID, doc.Location())
	}
	return b.Builder.Build(op)
}

// RequiredFieldsFromOperation returns the required fields of operationID's
// request body in authored order.
func RequiredFieldsFromOperation(ctx context.Context, src pkgopenapi.Source, operationID string, options ...pkgopenapi.LoaderOption) ([]string, error) {
	form, err := NewFormBuilder(options...).Form(ctx, src, operationID)
	if err != nil {
		return nil, err
	}
	return model.RequiredFields(form), nil
}

func locationOf(src pkgopenapi.Source) string {
	if src == nil {
		return "<nil>"
	}
	return src.Location()
}

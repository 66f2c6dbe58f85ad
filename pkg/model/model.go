package model

import (
	internalmodel "github.com/goliatone/go-formguard/internal/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

type (
	FieldType = internalmodel.FieldType
	Field     = internalmodel.Field
	FormModel = internalmodel.FormModel
)

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeArray   = internalmodel.FieldTypeArray
	FieldTypeObject  = internalmodel.FieldTypeObject
)

// Builder derives a FormModel from an operation's request body.
type Builder interface {
	Build(op pkgopenapi.Operation) (FormModel, error)
}

// BuilderOption configures NewBuilder.
type BuilderOption func(*internalmodel.Options)

// WithLabeler replaces the field label generator.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *internalmodel.Options) {
		opts.Labeler = labeler
	}
}

// NewBuilder returns the default Builder.
func NewBuilder(options ...BuilderOption) Builder {
	var opts internalmodel.Options
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	return internalmodel.New(opts)
}

// DefaultLabeler is the label generator used when none is supplied, e.g.
// "hotel_preference" becomes "Hotel preference".
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}

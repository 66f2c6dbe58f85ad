package openapi

import (
	"errors"
	"fmt"
	"mime"
	"strings"
)

// Document is a raw OpenAPI payload and where it came from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("openapi: %s is empty", src.Location())
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

func (d Document) Source() Source { return d.source }

// Raw returns a copy of the payload.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is an endpoint together with the request body schema selected by
// the parser's media type preference.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	ContentType string
	RequestBody Schema
}

// NewOperation validates the routing fields.
func NewOperation(id, method, path string, request Schema) (Operation, error) {
	switch {
	case id == "":
		return Operation{}, errors.New("openapi: operation id is required")
	case method == "":
		return Operation{}, fmt.Errorf("openapi: operation %s: method is required", id)
	case path == "":
		return Operation{}, fmt.Errorf("openapi: operation %s: path is required", id)
	}
	return Operation{ID: id, Method: method, Path: path, RequestBody: request}, nil
}

// FormEncoded reports whether the selected body is one a browser form submits.
func (o Operation) FormEncoded() bool {
	return IsFormContentType(o.ContentType)
}

// IsFormContentType reports whether contentType is urlencoded or multipart
// form data. Parameters such as charset are ignored.
func IsFormContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// Schema is a request body or one of its properties. Required keeps the
// authored order of the document. A Schema that only carries Ref marks a
// reference that was not expanded, either because it was unresolved or
// because it closes a cycle.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Description string
}

// DebugString summarises the schema for logs and test failures.
func (s Schema) DebugString() string {
	parts := []string{"type=" + s.Type}
	if s.Ref != "" {
		parts = append(parts, "ref="+s.Ref)
	}
	if len(s.Required) > 0 {
		parts = append(parts, "required="+strings.Join(s.Required, "|"))
	}
	if len(s.Properties) > 0 {
		parts = append(parts, fmt.Sprintf("properties=%d", len(s.Properties)))
	}
	if s.Items != nil {
		parts = append(parts, "items="+s.Items.Type)
	}
	return strings.Join(parts, ",")
}

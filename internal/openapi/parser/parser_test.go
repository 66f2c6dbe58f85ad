package parser

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
	"github.com/goliatone/go-formguard/pkg/testsupport"
)

func TestConvertSchemaHandlesRecursiveReferences(t *testing.T) {
	const document = `{
  "openapi": "3.0.0",
  "info": { "title": "Cycle", "version": "1.0.0" },
  "paths": {},
  "components": {
    "schemas": {
      "PublishingHouse": {
        "type": "object",
        "properties": {
          "headquarters": { "$ref": "#/components/schemas/Headquarters" }
        }
      },
      "Headquarters": {
        "type": "object",
        "properties": {
          "publisher": { "$ref": "#/components/schemas/PublishingHouse" }
        }
      }
    }
  }
}`

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(document))
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}

	publishing := doc.Components.Schemas["PublishingHouse"]
	if publishing == nil {
		t.Fatalf("schema PublishingHouse not found")
	}
	converted := convertSchema(publishing, nil)
	headquarters, ok := converted.Properties["headquarters"]
	if !ok {
		t.Fatalf("expected headquarters property on PublishingHouse schema")
	}
	if headquarters.Ref == "" {
		t.Fatalf("expected headquarters property to retain its reference")
	}
	publisher, ok := headquarters.Properties["publisher"]
	if !ok {
		t.Fatalf("expected publisher property on Headquarters schema")
	}
	cycle, ok := publisher.Properties["headquarters"]
	if !ok {
		t.Fatalf("expected cycle to be represented once")
	}
	if cycle.Ref != "#/components/schemas/Headquarters" || len(cycle.Properties) != 0 {
		t.Fatalf("expected repeated reference to stay unresolved, got %s", cycle.DebugString())
	}
}

func TestOperations_PrefersFormEncoding(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())

	ops, err := p.Operations(context.Background(), testsupport.OpenAPIDocument(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	rsvp, ok := ops["submitRSVP"]
	if !ok {
		t.Fatalf("expected submitRSVP operation, got %v", keys(ops))
	}
	if rsvp.Method != "POST" || rsvp.Path != "/rsvp" {
		t.Fatalf("unexpected operation routing: %s %s", rsvp.Method, rsvp.Path)
	}
	if rsvp.ContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("expected form encoding to win, got %q", rsvp.ContentType)
	}
	if diff := cmp.Diff(testsupport.RSVPRequired, rsvp.RequestBody.Required); diff != "" {
		t.Fatalf("required order mismatch (-want +got):\n%s", diff)
	}

	if _, ok := ops["post:/newsletter"]; !ok {
		t.Fatalf("expected fallback id for operation without operationId, got %v", keys(ops))
	}
}

func TestOperations_ContentTypeOverride(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithContentTypes("application/json")))

	ops, err := p.Operations(context.Background(), testsupport.OpenAPIDocument(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if diff := cmp.Diff([]string{"payload"}, ops["submitRSVP"].RequestBody.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if got := ops["post:/newsletter"].ContentType; got != "" {
		t.Fatalf("expected no matching body for newsletter, got %q", got)
	}
}

func TestOperations_RejectsEmptyPaths(t *testing.T) {
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("empty.json"), []byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{}}`))
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	if _, err := New(pkgopenapi.NewParserOptions()).Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
}

func keys(ops map[string]pkgopenapi.Operation) []string {
	out := make([]string, 0, len(ops))
	for id := range ops {
		out = append(out, id)
	}
	return out
}

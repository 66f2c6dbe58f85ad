package formguard_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
	"github.com/goliatone/go-formguard/pkg/testsupport"
)

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{"rsvp.json": {Data: []byte(testsupport.RSVPOpenAPI)}}
}

func TestRequiredFieldsFromOperation(t *testing.T) {
	got, err := formguard.RequiredFieldsFromOperation(
		context.Background(),
		pkgopenapi.SourceFromFS("rsvp.json"),
		"submitRSVP",
		pkgopenapi.WithFileSystem(fixtureFS()),
	)
	if err != nil {
		t.Fatalf("required fields: %v", err)
	}
	if diff := cmp.Diff(testsupport.RSVPRequired, got); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormBuilder_DeclaredFields(t *testing.T) {
	builder := formguard.NewFormBuilder(pkgopenapi.WithFileSystem(fixtureFS()))
	form, err := builder.Form(context.Background(), pkgopenapi.SourceFromFS("rsvp.json"), "submitRSVP")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	want := []string{
		"name", "email", "guests", "address", "hotel_preference", "notes",
		"party", "party.size", "party.children",
	}
	if diff := cmp.Diff(want, model.FieldNames(form)); diff != "" {
		t.Fatalf("declared fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFormBuilder_UnknownOperation(t *testing.T) {
	builder := formguard.NewFormBuilder(pkgopenapi.WithFileSystem(fixtureFS()))
	_, err := builder.Form(context.Background(), pkgopenapi.SourceFromFS("rsvp.json"), "deleteRSVP")
	if !errors.Is(err, formguard.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

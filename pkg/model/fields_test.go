package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

func sampleForm() model.FormModel {
	return model.FormModel{
		OperationID: "submitRSVP",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true},
			{Name: "email", Type: model.FieldTypeString, Required: true},
			{
				Name:     "party",
				Type:     model.FieldTypeObject,
				Required: true,
				Nested: []model.Field{
					{Name: "size", Type: model.FieldTypeInteger, Required: true},
					{Name: "children", Type: model.FieldTypeInteger},
				},
			},
			{
				Name: "owner",
				Type: model.FieldTypeObject,
				Nested: []model.Field{
					{Name: "phone", Type: model.FieldTypeString, Required: true},
				},
			},
			{Name: "notes", Type: model.FieldTypeString},
		},
	}
}

func TestRequiredFields(t *testing.T) {
	got := model.RequiredFields(sampleForm())
	want := []string{"name", "email", "party.size"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredFields_ObjectWithOptionalChildren(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true},
			{
				Name:     "address",
				Type:     model.FieldTypeObject,
				Required: true,
				Nested: []model.Field{
					{Name: "street", Type: model.FieldTypeString},
					{Name: "city", Type: model.FieldTypeString},
				},
			},
		},
	}
	if diff := cmp.Diff([]string{"name", "address"}, model.RequiredFields(form)); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldNames(t *testing.T) {
	got := model.FieldNames(sampleForm())
	want := []string{"name", "email", "party", "party.size", "party.children", "owner", "owner.phone", "notes"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field names mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBuilder_CustomLabeler(t *testing.T) {
	builder := model.NewBuilder(model.WithLabeler(func(name string) string { return "[" + name + "]" }))
	form, err := builder.Build(pkgopenapi.Operation{
		ID:     "submit",
		Method: "POST",
		Path:   "/submit",
		RequestBody: pkgopenapi.Schema{
			Type:       "object",
			Required:   []string{"name"},
			Properties: map[string]pkgopenapi.Schema{"name": {Type: "string"}},
		},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := form.Fields[0].Label; got != "[name]" {
		t.Fatalf("expected custom label, got %q", got)
	}
	if diff := cmp.Diff([]string{"name"}, model.RequiredFields(form)); diff != "" {
		t.Fatalf("required fields mismatch (-want +got):\n%s", diff)
	}
}

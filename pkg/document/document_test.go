package document_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard/pkg/document"
	"github.com/goliatone/go-formguard/pkg/formcheck"
	"github.com/goliatone/go-formguard/pkg/testsupport"
)

func TestField_MirrorsDOMValues(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	cases := []struct {
		field   string
		value   string
		present bool
	}{
		{field: "name", value: "Amy Pond", present: true},
		{field: "email", value: "", present: true},
		{field: "address", value: "", present: true},
		{field: "guests", value: "", present: true},
		{field: "hotel_preference", value: "courtyard", present: true},
		{field: "notes", value: "  ", present: true},
		{field: "extras", value: "", present: false},
	}

	for _, tc := range cases {
		value, present, err := doc.Field("rsvp", tc.field)
		if err != nil {
			t.Fatalf("field %s: %v", tc.field, err)
		}
		if value != tc.value || present != tc.present {
			t.Fatalf("field %s: want (%q, %v), got (%q, %v)", tc.field, tc.value, tc.present, value, present)
		}
	}
}

func TestField_FormLookupOrder(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	for _, id := range []string{"rsvp", "rsvp-form", "0"} {
		if value, _, err := doc.Field(id, "name"); err != nil || value != "Amy Pond" {
			t.Fatalf("form %q: want Amy Pond, got %q (%v)", id, value, err)
		}
	}

	value, _, err := doc.Field("1", "email")
	if err != nil {
		t.Fatalf("index lookup: %v", err)
	}
	if value != "amy@example.com" {
		t.Fatalf("expected newsletter email, got %q", value)
	}

	if _, _, err := doc.Field("2", "email"); !errors.Is(err, formcheck.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound for out of range index, got %v", err)
	}
	if _, _, err := doc.Field("signup", "email"); !errors.Is(err, formcheck.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
}

func TestField_FormAttributeOwnership(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	value, present, err := doc.Field("newsletter", "subscribe")
	if err != nil {
		t.Fatalf("external control: %v", err)
	}
	if !present || value != "on" {
		t.Fatalf("expected checkbox default value on, got (%q, %v)", value, present)
	}

	if _, _, err := doc.Field("rsvp", "subscribe"); !errors.Is(err, formcheck.ErrFieldNotFound) {
		t.Fatalf("control owned by another form must not resolve, got %v", err)
	}
}

func TestField_EmptyFormAttributeHasNoOwner(t *testing.T) {
	doc, err := document.ParseString(`<form name="f">
  <input name="inside" value="x">
  <input name="orphan" form="" value="y">
</form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if value, _, err := doc.Field("f", "inside"); err != nil || value != "x" {
		t.Fatalf("inside: want x, got %q (%v)", value, err)
	}
	if _, _, err := doc.Field("f", "orphan"); !errors.Is(err, formcheck.ErrFieldNotFound) {
		t.Fatalf("control with empty form attribute must not resolve, got %v", err)
	}
	if diff := cmp.Diff([]string{"inside"}, doc.Forms()[0].Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestField_UnknownAndImageControls(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	for _, name := range []string{"fax", "banner"} {
		_, _, err := doc.Field("rsvp", name)
		var notFound formcheck.FieldNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("field %s: expected FieldNotFoundError, got %v", name, err)
		}
		if notFound.Form != "rsvp" || notFound.Field != name {
			t.Fatalf("unexpected error detail: %+v", notFound)
		}
	}
}

func TestField_SelectRules(t *testing.T) {
	doc, err := document.ParseString(`<form name="f">
  <select name="last"><option selected value="a">A</option><option selected value="b">B</option></select>
  <select name="multi" multiple><option value="a">A</option><option value="b">B</option></select>
  <select name="multipick" multiple><option value="a" selected>A</option><option value="b" selected>B</option></select>
  <select name="text"><option>  Two   words </option></select>
  <select name="none"></select>
  <input type="radio" name="pick" value="x"><input type="radio" name="pick" value="y">
  <output name="total">42</output>
</form>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]string{
		"last":      "b",
		"multi":     "",
		"multipick": "a",
		"text":      "Two words",
		"none":      "",
		"pick":      "",
		"total":     "42",
	}
	got := make(map[string]string, len(want))
	for name := range want {
		value, _, err := doc.Field("f", name)
		if err != nil {
			t.Fatalf("field %s: %v", name, err)
		}
		got[name] = value
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("select values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_AgainstPage(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	outcome, err := formcheck.Validate(doc, "rsvp", []string{"name", "email", "guests", "notes"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"email", "guests"}, outcome.Missing); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}

	outcome, err = formcheck.Validate(doc, "rsvp", []string{"extras"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if diff := cmp.Diff([]string{"extras"}, outcome.Missing); diff != "" {
		t.Fatalf("absent value must count as missing (-want +got):\n%s", diff)
	}
}

func TestForms_ListsFieldsInDocumentOrder(t *testing.T) {
	doc := testsupport.MustParsePage(t, testsupport.RSVPPage)

	got := doc.Forms()
	want := []document.FormInfo{
		{
			Index:  0,
			Name:   "rsvp",
			ID:     "rsvp-form",
			Action: "/rsvp",
			Method: "POST",
			Fields: []string{"name", "email", "address", "guests", "hotel_preference", "notes", "extras"},
		},
		{
			Index:  1,
			ID:     "newsletter",
			Action: "/newsletter",
			Method: "POST",
			Fields: []string{"email", "subscribe"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("forms mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NilReader(t *testing.T) {
	if _, err := document.Parse(nil); err == nil {
		t.Fatalf("expected error for nil reader")
	}
}

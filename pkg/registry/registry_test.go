package registry_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/config"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
	"github.com/goliatone/go-formguard/pkg/registry"
	"github.com/goliatone/go-formguard/pkg/testsupport"
)

type countingLoader struct {
	inner pkgopenapi.Loader
	calls atomic.Int32
}

func (c *countingLoader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	c.calls.Add(1)
	return c.inner.Load(ctx, pkgopenapi.SourceFromFS(src.Location()))
}

func newRegistry(t *testing.T) (*registry.Registry, *countingLoader) {
	t.Helper()

	cfg := config.Default()
	cfg.Forms = []config.Form{
		{ID: "contact", Required: []string{"email", "message"}, Declared: []string{"email", "message", "phone"}},
		{ID: "rsvp", Path: "/rsvp", OpenAPI: &config.OpenAPIRef{Source: "rsvp.json", Operation: "submitRSVP"}},
	}

	loader := &countingLoader{inner: formguard.NewLoader(pkgopenapi.WithFileSystem(fstest.MapFS{
		"rsvp.json": {Data: []byte(testsupport.RSVPOpenAPI)},
	}))}
	builder := formguard.NewFormBuilder()
	builder.Loader = loader

	reg, err := registry.New(cfg, registry.WithFormBuilder(builder))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg, loader
}

func TestResolve_Static(t *testing.T) {
	reg, _ := newRegistry(t)

	def, err := reg.Resolve(context.Background(), "contact")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := registry.Definition{
		ID:       "contact",
		Path:     "/contact",
		Required: []string{"email", "message"},
		Declared: []string{"email", "message", "phone"},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_OpenAPIIsCached(t *testing.T) {
	reg, loader := newRegistry(t)

	for i := 0; i < 3; i++ {
		def, err := reg.Resolve(context.Background(), "rsvp")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if diff := cmp.Diff(testsupport.RSVPRequired, def.Required); diff != "" {
			t.Fatalf("required mismatch (-want +got):\n%s", diff)
		}
		def.Required[0] = "mutated"
	}
	if got := loader.calls.Load(); got != 1 {
		t.Fatalf("expected a single document load, got %d", got)
	}
}

func TestResolve_UnknownForm(t *testing.T) {
	reg, _ := newRegistry(t)
	if _, err := reg.Resolve(context.Background(), "missing"); !errors.Is(err, registry.ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
	if diff := cmp.Diff([]string{"contact", "rsvp"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

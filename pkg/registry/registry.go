// Package registry resolves configured form ids into the field lists the
// validator needs. Definitions backed by OpenAPI operations are cached so a
// remote document is not fetched for every submission.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goliatone/go-formguard"
	"github.com/goliatone/go-formguard/pkg/config"
	"github.com/goliatone/go-formguard/pkg/model"
	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

// ErrUnknownForm is returned for ids that were never configured.
var ErrUnknownForm = errors.New("registry: unknown form")

const defaultHTTPTimeout = 10 * time.Second

// Definition is the resolved view of one form.
type Definition struct {
	ID       string
	Path     string
	Required []string
	// Declared is nil when any submitted name is accepted.
	Declared []string
	HelpHTML string
}

// Registry resolves form definitions. It is safe for concurrent use.
type Registry struct {
	forms   map[string]config.Form
	order   []string
	builder *formguard.FormBuilder
	cache   *cache.Cache
	logger  *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithFormBuilder overrides the OpenAPI form builder.
func WithFormBuilder(builder *formguard.FormBuilder) Option {
	return func(r *Registry) {
		if builder != nil {
			r.builder = builder
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New builds a Registry from cfg.
func New(cfg *config.Config, opts ...Option) (*Registry, error) {
	if cfg == nil {
		return nil, errors.New("registry: config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = config.DefaultCacheTTL
	}
	r := &Registry{
		forms:   make(map[string]config.Form, len(cfg.Forms)),
		builder: formguard.NewFormBuilder(pkgopenapi.WithHTTPFallback(defaultHTTPTimeout)),
		cache:   cache.New(ttl, 2*ttl),
		logger:  zap.NewNop(),
	}
	for _, form := range cfg.Forms {
		r.forms[form.ID] = form
		r.order = append(r.order, form.ID)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// IDs lists configured form ids in configuration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Resolve returns the definition for id.
func (r *Registry) Resolve(ctx context.Context, id string) (Definition, error) {
	form, ok := r.forms[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
	}
	def := Definition{
		ID:       form.ID,
		Path:     form.RoutePath(),
		HelpHTML: form.HelpHTML,
	}
	if form.OpenAPI == nil {
		def.Required = append([]string(nil), form.Required...)
		if len(form.Declared) > 0 {
			def.Declared = append([]string(nil), form.Declared...)
		}
		return def, nil
	}

	derived, err := r.fromOpenAPI(ctx, form)
	if err != nil {
		return Definition{}, err
	}
	def.Required = derived.Required
	def.Declared = derived.Declared
	return def, nil
}

type derivedFields struct {
	Required []string
	Declared []string
}

func (r *Registry) fromOpenAPI(ctx context.Context, form config.Form) (derivedFields, error) {
	key := form.OpenAPI.Source + "#" + form.OpenAPI.Operation
	if cached, ok := r.cache.Get(key); ok {
		return copyDerived(cached.(derivedFields)), nil
	}

	src, err := pkgopenapi.ParseSource(form.OpenAPI.Source)
	if err != nil {
		return derivedFields{}, fmt.Errorf("registry: form %q: %w", form.ID, err)
	}
	built, err := r.builder.Form(ctx, src, form.OpenAPI.Operation)
	if err != nil {
		return derivedFields{}, fmt.Errorf("registry: form %q: %w", form.ID, err)
	}

	if !pkgopenapi.IsFormContentType(built.ContentType) {
		r.logger.Warn("operation body is not form encoded",
			zap.String("form", form.ID),
			zap.String("operation", form.OpenAPI.Operation),
			zap.String("content_type", built.ContentType),
		)
	}

	derived := derivedFields{
		Required: model.RequiredFields(built),
		Declared: model.FieldNames(built),
	}
	r.cache.Set(key, derived, cache.DefaultExpiration)
	r.logger.Debug("form definition derived from openapi",
		zap.String("form", form.ID),
		zap.String("source", form.OpenAPI.Source),
		zap.Strings("required", derived.Required),
	)
	return copyDerived(derived), nil
}

func copyDerived(in derivedFields) derivedFields {
	return derivedFields{
		Required: append([]string(nil), in.Required...),
		Declared: append([]string(nil), in.Declared...),
	}
}

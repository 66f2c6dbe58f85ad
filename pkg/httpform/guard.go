package httpform

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formguard/pkg/config"
	"github.com/goliatone/go-formguard/pkg/formcheck"
	"github.com/goliatone/go-formguard/pkg/registry"
)

const multipartMemory = 32 << 20

// Resolver resolves a form id into its field lists.
type Resolver interface {
	Resolve(ctx context.Context, formID string) (registry.Definition, error)
}

// Option configures Guard.
type Option func(*guard)

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithResolver resolves field lists through r on every submission instead of
// using the static lists of the configured form.
func WithResolver(r Resolver) Option {
	return func(g *guard) {
		g.resolver = r
	}
}

// WithMetrics records each submission in m.
func WithMetrics(m *Metrics) Option {
	return func(g *guard) {
		g.metrics = m
	}
}

// WithMaxBodyBytes caps the request body size. Non-positive values keep the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(g *guard) {
		if n > 0 {
			g.maxBodyBytes = n
		}
	}
}

type guard struct {
	form         config.Form
	resolver     Resolver
	metrics      *Metrics
	logger       *zap.Logger
	maxBodyBytes int64
}

type outcomeKey struct{}

// OutcomeFromContext returns the validation outcome stored by Guard for an
// accepted submission.
func OutcomeFromContext(ctx context.Context) (formcheck.Outcome, bool) {
	outcome, ok := ctx.Value(outcomeKey{}).(formcheck.Outcome)
	return outcome, ok
}

// Guard returns middleware that rejects submissions of form whose required
// fields are empty. Rejections answer 422 without calling the next handler;
// lookup failures answer 500.
func Guard(form config.Form, opts ...Option) func(http.Handler) http.Handler {
	g := &guard{
		form:         form,
		logger:       zap.NewNop(),
		maxBodyBytes: config.DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			g.serve(next, w, r)
		})
	}
}

func (g *guard) serve(next http.Handler, w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		next.ServeHTTP(w, r)
		return
	}

	logger := g.logger.With(zap.String("form", g.form.ID))

	if err := g.parseBody(w, r); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		logger.Info("form body rejected", zap.Error(err))
		http.Error(w, http.StatusText(status), status)
		return
	}

	def, err := g.definition(r.Context())
	if err != nil {
		g.fail(w, logger, err)
		return
	}

	provider := NewProvider(g.form.ID, r.PostForm, def.Declared)
	validator := formcheck.NewValidator(provider, formcheck.WithLogger(logger))
	outcome, err := validator.Validate(r.Context(), g.form.ID, def.Required)
	if err != nil {
		g.fail(w, logger, err)
		return
	}

	if !outcome.Valid() {
		g.metrics.IncrementSubmission(g.form.ID, OutcomeInvalid)
		logger.Info("form submission rejected", zap.Strings("missing", outcome.Missing))
		g.reject(w, r, logger, def, outcome)
		return
	}

	g.metrics.IncrementSubmission(g.form.ID, OutcomeValid)
	ctx := context.WithValue(r.Context(), outcomeKey{}, outcome)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func (g *guard) parseBody(w http.ResponseWriter, r *http.Request) error {
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, g.maxBodyBytes)
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

func (g *guard) definition(ctx context.Context) (registry.Definition, error) {
	if g.resolver != nil {
		return g.resolver.Resolve(ctx, g.form.ID)
	}
	if g.form.OpenAPI != nil {
		return registry.Definition{}, errors.New("httpform: openapi form requires a resolver")
	}
	return registry.Definition{
		ID:       g.form.ID,
		Path:     g.form.RoutePath(),
		Required: g.form.Required,
		Declared: g.form.Declared,
		HelpHTML: g.form.HelpHTML,
	}, nil
}

// Failure messages returned in the error payload.
const (
	MessageMismatch    = "form definition does not match the submission"
	MessageUnavailable = "form definition is unavailable"
	MessageCanceled    = "request canceled"
)

func (g *guard) fail(w http.ResponseWriter, logger *zap.Logger, err error) {
	g.metrics.IncrementSubmission(g.form.ID, OutcomeError)
	message := failMessage(err)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Debug("form guard canceled", zap.Error(err))
	case formcheck.IsLookupError(err):
		logger.Warn("form guard lookup failed", zap.Error(err))
	default:
		logger.Error("form guard failed", zap.Error(err))
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"form":   g.form.ID,
		"errors": map[string][]string{"form": {message}},
	})
}

func failMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return MessageCanceled
	case formcheck.IsLookupError(err):
		return MessageMismatch
	default:
		return MessageUnavailable
	}
}

func (g *guard) reject(w http.ResponseWriter, r *http.Request, logger *zap.Logger, def registry.Definition, outcome formcheck.Outcome) {
	payload := NewPayload(g.form.ID, outcome)
	if !wantsHTML(r) {
		writeJSON(w, http.StatusUnprocessableEntity, payload)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := renderNotice(w, payload, def.HelpHTML); err != nil {
		logger.Error("render notice", zap.Error(err))
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

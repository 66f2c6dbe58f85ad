package formcheck

import (
	"context"

	"go.uber.org/zap"
)

// Option configures a Validator.
type Option func(*Validator)

// WithLogger attaches a logger used for debug traces of each call.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator binds a FormProvider so callers can validate by form id alone.
// It holds no state between calls.
type Validator struct {
	provider FormProvider
	logger   *zap.Logger
}

// NewValidator constructs a Validator for provider.
func NewValidator(provider FormProvider, opts ...Option) *Validator {
	v := &Validator{
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate checks required against formID. See the package-level Validate for
// the semantics; a cancelled context is reported before any field is read.
func (v *Validator) Validate(ctx context.Context, formID string, required []string) (Outcome, error) {
	if v == nil {
		return Outcome{}, errNilProvider
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	outcome, err := Validate(v.provider, formID, required)
	if err != nil {
		v.logger.Debug("form lookup failed",
			zap.String("form", formID),
			zap.Error(err),
		)
		return Outcome{}, err
	}

	v.logger.Debug("form validated",
		zap.String("form", formID),
		zap.Int("required", len(required)),
		zap.Strings("missing", outcome.Missing),
	)
	return outcome, nil
}

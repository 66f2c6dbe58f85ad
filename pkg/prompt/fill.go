package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formguard/pkg/formcheck"
)

// Labeler turns a field name into prompt text.
type Labeler func(name string) string

// FillOption configures Fill.
type FillOption func(*fillConfig)

type fillConfig struct {
	labeler Labeler
	help    map[string]string
}

// WithLabeler overrides how prompts are worded.
func WithLabeler(labeler Labeler) FillOption {
	return func(cfg *fillConfig) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithHelp attaches help text per field name.
func WithHelp(help map[string]string) FillOption {
	return func(cfg *fillConfig) {
		cfg.help = help
	}
}

// Fill asks for every field once and records the answers as form formID. An
// empty answer is stored as an empty value, not as an absent one. Repeated
// names are asked once.
func Fill(ctx context.Context, driver Driver, formID string, fields []string, opts ...FillOption) (formcheck.MapProvider, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	cfg := fillConfig{labeler: func(name string) string { return name }}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	provider := formcheck.MapProvider{}
	if len(fields) == 0 {
		provider[formID] = map[string]*string{}
		return provider, nil
	}

	if err := driver.Info(ctx, fmt.Sprintf("Filling form %q", formID)); err != nil {
		return nil, err
	}
	asked := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if _, ok := asked[name]; ok {
			continue
		}
		asked[name] = struct{}{}

		answer, err := driver.Input(ctx, InputConfig{
			Message: cfg.labeler(name),
			Help:    cfg.help[name],
		})
		if err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", name, err)
		}
		provider.Set(formID, name, answer)
	}
	return provider, nil
}

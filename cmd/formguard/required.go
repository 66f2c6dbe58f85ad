package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formguard/pkg/registry"
)

// requiredFields returns the --require list when set, otherwise the required
// fields of formID as configured.
func requiredFields(ctx context.Context, formID string, require []string) ([]string, error) {
	if names := splitNames(require); len(names) > 0 {
		return names, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	reg, err := registry.New(cfg, registry.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	def, err := reg.Resolve(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("no --require list and %w", err)
	}
	return def.Required, nil
}

func splitNames(values []string) []string {
	var out []string
	for _, value := range values {
		for _, name := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

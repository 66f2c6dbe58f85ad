package model

import (
	"errors"
	"fmt"
	"strings"

	pkgopenapi "github.com/goliatone/go-formguard/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

// validateOperation reports every problem that would make the derived field
// lists wrong, not only the first one.
func validateOperation(op pkgopenapi.Operation) error {
	var errs []error
	if strings.TrimSpace(op.ID) == "" {
		errs = append(errs, errOperationIDMissing)
	}
	if strings.TrimSpace(op.Path) == "" {
		errs = append(errs, errOperationPathMissing)
	}
	if strings.TrimSpace(op.Method) == "" {
		errs = append(errs, errOperationMethodMissing)
	}
	errs = append(errs, validateBody(op.RequestBody, "")...)
	return errors.Join(errs...)
}

// validateBody rejects object schemas whose required list names properties
// that do not exist; such a field could never be checked. Unresolved
// references are rejected for the same reason.
func validateBody(schema pkgopenapi.Schema, prefix string) []error {
	var errs []error
	if schema.Ref != "" && schema.Type == "" && len(schema.Properties) == 0 && prefix == "" {
		errs = append(errs, fmt.Errorf("model builder: request body reference %s was not resolved", schema.Ref))
	}
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; !ok {
			errs = append(errs, fmt.Errorf("model builder: required property %q is not declared", joinName(prefix, name)))
		}
	}
	for name, property := range schema.Properties {
		if len(property.Properties) > 0 || len(property.Required) > 0 {
			errs = append(errs, validateBody(property, joinName(prefix, name))...)
		}
	}
	return errs
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

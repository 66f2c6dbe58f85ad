package formcheck

import (
	"errors"
	"fmt"
)

var (
	// ErrFieldNotFound signals that a required field name is not declared on
	// the form at all.
	ErrFieldNotFound = errors.New("formcheck: field not found")
	// ErrFormNotFound signals that the form identifier did not resolve.
	ErrFormNotFound = errors.New("formcheck: form not found")

	errNilProvider = errors.New("formcheck: provider is nil")
)

// FieldNotFoundError identifies the form and field of a failed lookup.
type FieldNotFoundError struct {
	Form  string
	Field string
}

func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("formcheck: field %q not found on form %q", e.Field, e.Form)
}

// Is reports whether target is ErrFieldNotFound.
func (e FieldNotFoundError) Is(target error) bool {
	return target == ErrFieldNotFound
}

// FormNotFoundError identifies a form identifier that did not resolve.
type FormNotFoundError struct {
	Form string
}

func (e FormNotFoundError) Error() string {
	return fmt.Sprintf("formcheck: form %q not found", e.Form)
}

// Is reports whether target is ErrFormNotFound.
func (e FormNotFoundError) Is(target error) bool {
	return target == ErrFormNotFound
}

// IsLookupError reports whether err is a form or field lookup failure, as
// opposed to a context or transport error.
func IsLookupError(err error) bool {
	return errors.Is(err, ErrFieldNotFound) || errors.Is(err, ErrFormNotFound)
}

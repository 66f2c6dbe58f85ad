// Package httpform guards form submission endpoints. A Provider adapts a
// parsed request body to formcheck.FormProvider and Guard wraps a handler so
// submissions with empty required fields are rejected before the handler
// runs.
package httpform

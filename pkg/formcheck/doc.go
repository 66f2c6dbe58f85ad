// Package formcheck decides whether the required fields of a named form hold
// values. Forms are owned by an external document reached through a
// FormProvider; the package only reads them.
//
// A value is empty when it is absent or equal to the empty string. Whitespace
// is significant: " " is a value. Missing fields are collected in the order
// the caller listed them and reported together. A required name that does not
// exist on the form is an integration defect and surfaces as an error wrapping
// ErrFieldNotFound instead of a validation failure.
//
// Guard combines a Validator with a Notifier to form the submission gate: an
// invalid form produces one notification listing every missing field and a
// false "proceed" result.
package formcheck

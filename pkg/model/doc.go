// Package model defines the typed form model derived from an OpenAPI request
// body. Builders reside in internal/model but return the types defined here.
//
// The helpers in this package turn a FormModel into the two name lists the
// rest of formguard consumes: the required fields to validate (RequiredFields)
// and the declared fields a submission may carry (FieldNames). Nested objects
// are addressed with dotted paths such as "party.size".
package model

package httpform

import "github.com/goliatone/go-formguard/pkg/formcheck"

// RequiredMessage is the field-level message attached to each missing field.
const RequiredMessage = "is required"

// Payload is the JSON body written for rejected submissions.
type Payload struct {
	Form    string              `json:"form"`
	Message string              `json:"message"`
	Missing []string            `json:"missing"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewPayload builds the rejection body for formID.
func NewPayload(formID string, outcome formcheck.Outcome) Payload {
	missing := outcome.Missing
	if missing == nil {
		missing = []string{}
	}
	return Payload{
		Form:    formID,
		Message: formcheck.Message(outcome),
		Missing: missing,
		Errors:  ErrorPayload(outcome),
	}
}

// ErrorPayload maps missing fields onto field-level messages keyed by field
// name. A field listed twice keeps a single message.
func ErrorPayload(outcome formcheck.Outcome) map[string][]string {
	if outcome.Valid() {
		return nil
	}
	out := make(map[string][]string, len(outcome.Missing))
	for _, name := range outcome.Missing {
		if _, exists := out[name]; exists {
			continue
		}
		out[name] = []string{RequiredMessage}
	}
	return out
}

package formcheck

import "strings"

// FormProvider exposes read access to the fields of externally owned forms.
//
// Field returns the current value of fieldName on formID. present is false
// when the field exists but carries no value. Lookup failures return an error
// wrapping ErrFormNotFound or ErrFieldNotFound.
type FormProvider interface {
	Field(formID, fieldName string) (value string, present bool, err error)
}

// Outcome is the result of one validation call. Missing lists the required
// fields with empty or absent values in the order they were requested.
type Outcome struct {
	Missing []string `json:"missing,omitempty"`
}

// Valid reports whether every required field held a value.
func (o Outcome) Valid() bool {
	return len(o.Missing) == 0
}

// String renders the outcome for logs.
func (o Outcome) String() string {
	if o.Valid() {
		return "valid"
	}
	return "invalid(" + strings.Join(o.Missing, ",") + ")"
}

// Validate reads each required field from provider and collects the ones that
// are empty. A lookup error aborts the call and is returned unchanged.
func Validate(provider FormProvider, formID string, required []string) (Outcome, error) {
	if provider == nil {
		return Outcome{}, errNilProvider
	}

	var missing []string
	for _, name := range required {
		value, present, err := provider.Field(formID, name)
		if err != nil {
			return Outcome{}, err
		}
		if isEmpty(value, present) {
			missing = append(missing, name)
		}
	}
	return Outcome{Missing: missing}, nil
}

func isEmpty(value string, present bool) bool {
	return !present || value == ""
}

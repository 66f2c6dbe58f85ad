package formcheck

// MapProvider is an in-memory document keyed by form id and field name. A nil
// value pointer marks a field that exists without a value.
type MapProvider map[string]map[string]*string

var _ FormProvider = MapProvider(nil)

// Field implements FormProvider.
func (m MapProvider) Field(formID, fieldName string) (string, bool, error) {
	fields, ok := m[formID]
	if !ok {
		return "", false, FormNotFoundError{Form: formID}
	}
	value, ok := fields[fieldName]
	if !ok {
		return "", false, FieldNotFoundError{Form: formID, Field: fieldName}
	}
	if value == nil {
		return "", false, nil
	}
	return *value, true, nil
}

// Set stores value under formID/fieldName, creating the form when needed.
func (m MapProvider) Set(formID, fieldName, value string) {
	m.form(formID)[fieldName] = &value
}

// SetAbsent declares fieldName on formID without a value.
func (m MapProvider) SetAbsent(formID, fieldName string) {
	m.form(formID)[fieldName] = nil
}

func (m MapProvider) form(formID string) map[string]*string {
	fields, ok := m[formID]
	if !ok {
		fields = make(map[string]*string)
		m[formID] = fields
	}
	return fields
}

package model

import "strings"

// RequiredFields returns the dotted paths of required fields in form order.
// A nested field is required only when every enclosing object is required. A
// required object with no required nested field is reported by its own path.
func RequiredFields(form FormModel) []string {
	var out []string
	collectRequired(form.Fields, "", &out)
	return out
}

func collectRequired(fields []Field, prefix string, out *[]string) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" || !field.Required {
			continue
		}
		path := joinPath(prefix, name)
		if field.Type == FieldTypeObject && len(field.Nested) > 0 {
			before := len(*out)
			collectRequired(field.Nested, path, out)
			if len(*out) > before {
				continue
			}
		}
		*out = append(*out, path)
	}
}

// FieldNames returns every declared dotted path, objects included, in form
// order.
func FieldNames(form FormModel) []string {
	var out []string
	collectNames(form.Fields, "", &out)
	return out
}

func collectNames(fields []Field, prefix string, out *[]string) {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		path := joinPath(prefix, name)
		*out = append(*out, path)
		if len(field.Nested) > 0 {
			collectNames(field.Nested, path, out)
		}
	}
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

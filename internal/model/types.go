package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

// Field models an individual input of a form derived from a request body.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Format      string    `json:"format,omitempty"`
	Required    bool      `json:"required"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Nested      []Field   `json:"nested,omitempty"`
	Items       *Field    `json:"items,omitempty"`
}

// FormModel is the form derived from one operation. Fields keep required
// properties first, in authored order, followed by the rest by name.
type FormModel struct {
	OperationID string  `json:"operationId"`
	Endpoint    string  `json:"endpoint"`
	Method      string  `json:"method"`
	Summary     string  `json:"summary,omitempty"`
	ContentType string  `json:"contentType,omitempty"`
	Fields      []Field `json:"fields"`
}

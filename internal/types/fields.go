package types

// FieldType is the value type of a dynamic submission form field.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeText    FieldType = "text"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeURL     FieldType = "url"
)

// SubmissionFormField is one entry of an event's dynamic submission
// form schema. Required is only honored when the field is enabled.
type SubmissionFormField struct {
	Key           string    `json:"key"           validate:"required"`
	Label         string    `json:"label"         validate:"required"`
	Type          FieldType `json:"type"          validate:"required"`
	Order         int       `json:"order"`
	Required      bool      `json:"required"`
	Enabled       bool      `json:"enabled"`
	PublicVisible bool      `json:"publicVisible"`
}

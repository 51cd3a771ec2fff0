package core

// FieldType is the semantic type of a schema field
type FieldType string

const (
	FieldBool      FieldType = "bool"
	FieldInt       FieldType = "int64"
	FieldString    FieldType = "string"
	FieldTimestamp FieldType = "timestamp"
)

// IsValid checks if the field type is one of the supported semantic types
func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldBool, FieldInt, FieldString, FieldTimestamp:
		return true
	}
	return false
}

// FieldInfo represents metadata about a single schema field of a resource
type FieldInfo struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

package core

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// AttrsColumn is the reserved column name carrying the full raw record as an
// opaque JSON document, for fields not individually modeled in the schema.
const AttrsColumn = "attrs"

// IDField is the identifier field name shared by all collection resources
const IDField = "id"

// Resource represents one upstream REST collection with its static schema
// and pushdown capabilities
type Resource struct {
	// Name is the collection path segment, e.g. "payment_intents"
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	Fields      []FieldInfo `json:"fields"`

	// ObjectKey is the JSON key holding the record array in a list envelope
	ObjectKey string `json:"object_key"`

	// Singleton marks resources that respond with a single non-paginated
	// object instead of a list envelope
	Singleton bool `json:"singleton"`

	// PushdownFields are the field names the upstream API accepts as
	// equality query parameters
	PushdownFields []string `json:"pushdown_fields"`

	// DirectLookup marks resources that support fetching a single record
	// at {resource}/{id}
	DirectLookup bool `json:"direct_lookup"`
}

// NewResource creates a resource with a display name derived from its
// collection name
func NewResource(name string, fields []FieldInfo) *Resource {
	return &Resource{
		Name:        name,
		DisplayName: generateDisplayName(name),
		Fields:      fields,
		ObjectKey:   "data",
	}
}

// WithObjectKey overrides the JSON key holding the record array
func (r *Resource) WithObjectKey(key string) *Resource {
	r.ObjectKey = key
	return r
}

// WithPushdown sets the field names eligible for query-parameter pushdown
func (r *Resource) WithPushdown(fields ...string) *Resource {
	r.PushdownFields = fields
	return r
}

// WithDirectLookup enables the single-object fetch shortcut for an
// id-equality qual
func (r *Resource) WithDirectLookup() *Resource {
	r.DirectLookup = true
	return r
}

// AsSingleton marks the resource as a single non-paginated object
func (r *Resource) AsSingleton() *Resource {
	r.Singleton = true
	return r
}

// Field returns the schema field with the given name, or nil if the field
// is not part of the static schema
func (r *Resource) Field(name string) *FieldInfo {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

// CanPushdown checks whether a field is in the resource's pushdownable set
func (r *Resource) CanPushdown(field string) bool {
	for _, f := range r.PushdownFields {
		if f == field {
			return true
		}
	}
	return false
}

// ColumnNames returns all schema field names plus the reserved attrs column
func (r *Resource) ColumnNames() []string {
	names := make([]string, 0, len(r.Fields)+1)
	for _, f := range r.Fields {
		names = append(names, f.Name)
	}
	names = append(names, AttrsColumn)
	return names
}

// generateDisplayName converts a snake_case collection name to "Display Name"
func generateDisplayName(name string) string {
	camel := strcase.ToCamel(name)
	result := ""
	for i, r := range camel {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result += " "
		}
		result += string(r)
	}
	return strings.TrimSpace(result)
}

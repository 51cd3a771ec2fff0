package core

import "fmt"

// Operator constants for Qual comparisons. Only OpEqual is eligible for
// pushdown; everything else is evaluated by the caller after the scan.
const (
	OpEqual = "="
)

// Qual represents a single comparison pushed down from the host query engine
type Qual struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    *Cell  `json:"value"`
	// IsOr marks the qual as part of a disjunction. Disjunctive quals are
	// never pushed down because they cannot be expressed as independent
	// query parameters.
	IsOr bool `json:"is_or"`
}

// Pushdownable reports whether this qual can be translated into an upstream
// query parameter at all. The field still has to be in the resource's
// pushdownable set.
func (q *Qual) Pushdownable() bool {
	return q.Operator == OpEqual && !q.IsOr && q.Value != nil
}

// Limit represents an optional result-count limit with offset
type Limit struct {
	Offset int64 `json:"offset"`
	Count  int64 `json:"count"`
}

// Query bundles the inputs of one scan: quals, requested columns and an
// optional limit
type Query struct {
	Quals   []Qual   `json:"quals"`
	Columns []string `json:"columns"`
	Limit   *Limit   `json:"limit,omitempty"`
}

// NewQuery creates an empty query
func NewQuery() *Query {
	return &Query{}
}

// WithQual adds an equality qual to the query
func (q *Query) WithQual(field string, value *Cell) *Query {
	q.Quals = append(q.Quals, Qual{Field: field, Operator: OpEqual, Value: value})
	return q
}

// WithColumns adds requested column names
func (q *Query) WithColumns(cols ...string) *Query {
	q.Columns = append(q.Columns, cols...)
	return q
}

// WithLimit sets the result-count limit
func (q *Query) WithLimit(offset, count int64) *Query {
	q.Limit = &Limit{Offset: offset, Count: count}
	return q
}

// Options carries the string options handed to an adapter at scan or modify
// time (object, rowid_column, api_url, ...)
type Options map[string]string

// Require returns the named option or an error if it is missing or empty
func (o Options) Require(key string) (string, error) {
	if v, ok := o[key]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("required option %q is not set", key)
}

// Get returns the named option or a default value when absent
func (o Options) Get(key, defaultValue string) string {
	if v, ok := o[key]; ok && v != "" {
		return v
	}
	return defaultValue
}

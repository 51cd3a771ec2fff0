package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CellKind identifies which variant of a Cell is populated
type CellKind int

const (
	CellBool CellKind = iota
	CellInt
	CellString
	CellTimestamp
	CellJSON
)

// Cell is a single typed value inside a Row. A nil *Cell represents NULL.
// Exactly one of the value fields is meaningful, selected by Kind.
type Cell struct {
	Kind CellKind

	Bool bool
	Int  int64
	Str  string
	Time time.Time
	JSON json.RawMessage
}

// NewBoolCell creates a boolean cell
func NewBoolCell(v bool) *Cell {
	return &Cell{Kind: CellBool, Bool: v}
}

// NewIntCell creates a 64-bit integer cell
func NewIntCell(v int64) *Cell {
	return &Cell{Kind: CellInt, Int: v}
}

// NewStringCell creates a string cell
func NewStringCell(v string) *Cell {
	return &Cell{Kind: CellString, Str: v}
}

// NewTimestampCell creates a timestamp cell
func NewTimestampCell(v time.Time) *Cell {
	return &Cell{Kind: CellTimestamp, Time: v}
}

// NewJSONCell creates an opaque JSON document cell
func NewJSONCell(raw json.RawMessage) *Cell {
	return &Cell{Kind: CellJSON, JSON: raw}
}

// String renders the cell value for display and query parameters
func (c *Cell) String() string {
	if c == nil {
		return ""
	}
	switch c.Kind {
	case CellBool:
		return strconv.FormatBool(c.Bool)
	case CellInt:
		return strconv.FormatInt(c.Int, 10)
	case CellString:
		return c.Str
	case CellTimestamp:
		return c.Time.UTC().Format(time.RFC3339)
	case CellJSON:
		return string(c.JSON)
	}
	return fmt.Sprintf("unknown cell kind %d", c.Kind)
}

// KindName returns a human-readable name for the cell's kind
func (c *Cell) KindName() string {
	if c == nil {
		return "null"
	}
	switch c.Kind {
	case CellBool:
		return "bool"
	case CellInt:
		return "int64"
	case CellString:
		return "string"
	case CellTimestamp:
		return "timestamp"
	case CellJSON:
		return "json"
	}
	return "unknown"
}

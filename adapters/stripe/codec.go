package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/preslavrachev/stripetable/core"
)

// ErrUnsupportedFieldType is returned when a row cell cannot be encoded into
// a request body
var ErrUnsupportedFieldType = errors.New("field type not supported")

// bodyToRows parses a response body into rows plus the pagination state read
// from the list envelope. A bare object (no {object:"list"} discriminator)
// is treated as a single record. Each row carries only the requested
// columns; a field that is absent or has the wrong JSON type leaves its cell
// NULL rather than failing the row.
func bodyToRows(body []byte, resource *core.Resource, columns []string) ([]*core.Row, string, bool, error) {
	var envelope map[string]any
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, "", false, fmt.Errorf("failed to decode response body: %w", err)
	}

	isList := false
	if obj, ok := envelope["object"].(string); ok {
		isList = obj == "list"
	}

	var records []any
	if isList {
		records, _ = envelope[resource.ObjectKey].([]any)
	} else {
		records = []any{envelope}
	}

	rows := make([]*core.Row, 0, len(records))
	cursor := ""

	for _, rec := range records {
		record, ok := rec.(map[string]any)
		if !ok {
			continue
		}

		row := core.NewRow()
		for _, col := range columns {
			if col == core.AttrsColumn {
				raw, err := json.Marshal(record)
				if err != nil {
					return nil, "", false, fmt.Errorf("failed to encode attrs for %s: %w", resource.Name, err)
				}
				row.Push(core.AttrsColumn, core.NewJSONCell(raw))
				continue
			}
			field := resource.Field(col)
			if field == nil {
				continue
			}
			row.Push(col, coerceCell(record[col], field.Type))
		}
		rows = append(rows, row)

		// last record's id becomes the cursor for the next page
		if id, ok := record["id"].(string); ok {
			cursor = id
		}
	}

	hasMore, _ := envelope["has_more"].(bool)

	return rows, cursor, hasMore, nil
}

// coerceCell converts a raw JSON value to a cell of the given semantic type.
// A missing or mismatched value yields NULL.
func coerceCell(value any, fieldType core.FieldType) *core.Cell {
	switch fieldType {
	case core.FieldBool:
		if v, ok := value.(bool); ok {
			return core.NewBoolCell(v)
		}
	case core.FieldInt:
		if v, ok := value.(float64); ok {
			return core.NewIntCell(int64(v))
		}
	case core.FieldString:
		if v, ok := value.(string); ok {
			return core.NewStringCell(v)
		}
	case core.FieldTimestamp:
		// Unix epoch seconds
		if v, ok := value.(float64); ok {
			return core.NewTimestampCell(time.Unix(int64(v), 0).UTC())
		}
	}
	return nil
}

// rowToBody serializes a row into the JSON-shaped body of a write call.
// Scalar cells map directly. The reserved attrs cell has its top-level
// key-value pairs merged into the body, typed columns taking precedence, so
// extra attributes look like first-class fields to the upstream API. Any
// other cell kind fails the encode and the caller must not send the request.
func rowToBody(row *core.Row) (map[string]any, error) {
	body := make(map[string]any)
	var attrs map[string]any

	cols := row.Columns()
	cells := row.Cells()
	for i, col := range cols {
		cell := cells[i]
		if cell == nil {
			continue
		}

		switch cell.Kind {
		case core.CellBool:
			body[col] = cell.Bool
		case core.CellInt:
			body[col] = cell.Int
		case core.CellString:
			body[col] = cell.Str
		case core.CellJSON:
			if col != core.AttrsColumn {
				continue
			}
			if err := json.Unmarshal(cell.JSON, &attrs); err != nil {
				return nil, fmt.Errorf("failed to decode attrs column: %w", err)
			}
		default:
			return nil, fmt.Errorf("%w: %s in column %q", ErrUnsupportedFieldType, cell.KindName(), col)
		}
	}

	for k, v := range attrs {
		if _, exists := body[k]; !exists {
			body[k] = v
		}
	}

	return body, nil
}

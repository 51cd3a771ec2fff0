package stripe

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/preslavrachev/stripetable/core"
)

const customersPage = `{
	"object": "list",
	"url": "/v1/customers",
	"has_more": false,
	"data": [
		{"id": "cus_1", "object": "customer", "email": "ada@example.com", "name": "Ada", "created": 1685620800, "livemode": false},
		{"id": "cus_2", "object": "customer", "email": "grace@example.com", "name": "Grace", "created": 1685707200, "livemode": false}
	]
}`

func TestBodyToRowsListEnvelope(t *testing.T) {
	resource := mustCatalogResource(t, "customers")

	rows, cursor, hasMore, err := bodyToRows([]byte(customersPage), resource, []string{"id", "email", "created"})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if hasMore {
		t.Error("has_more=false should be reported as no more pages")
	}
	if cursor != "cus_2" {
		t.Errorf("Cursor should be the last record's id, got %q", cursor)
	}

	cell, ok := rows[0].Get("email")
	if !ok || cell == nil || cell.Str != "ada@example.com" {
		t.Errorf("Expected email cell 'ada@example.com', got %v", cell)
	}

	created, _ := rows[0].Get("created")
	if created == nil || created.Kind != core.CellTimestamp {
		t.Fatalf("Expected timestamp cell for created, got %v", created)
	}
	want := time.Unix(1685620800, 0).UTC()
	if !created.Time.Equal(want) {
		t.Errorf("Expected created %v, got %v", want, created.Time)
	}

	// only requested columns materialize
	if rows[0].Len() != 3 {
		t.Errorf("Expected only the 3 requested columns, got %d", rows[0].Len())
	}
	if _, ok := rows[0].Get("name"); ok {
		t.Error("Unrequested column 'name' should not be populated")
	}
}

func TestBodyToRowsSingleObject(t *testing.T) {
	resource := mustCatalogResource(t, "customers")
	body := `{"id": "cus_9", "object": "customer", "email": "alan@example.com", "created": 1685620800}`

	rows, cursor, hasMore, err := bodyToRows([]byte(body), resource, []string{"id", "email"})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("A bare object should decode to exactly 1 row, got %d", len(rows))
	}
	if hasMore {
		t.Error("A bare object carries no has_more and must stop the loop")
	}
	if cursor != "cus_9" {
		t.Errorf("Expected cursor cus_9, got %q", cursor)
	}
}

func TestBodyToRowsHasMore(t *testing.T) {
	resource := mustCatalogResource(t, "charges")
	body := `{"object": "list", "has_more": true, "data": [{"id": "ch_1", "amount": 500}]}`

	_, cursor, hasMore, err := bodyToRows([]byte(body), resource, []string{"id", "amount"})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}
	if !hasMore {
		t.Error("has_more=true should be reported")
	}
	if cursor != "ch_1" {
		t.Errorf("Expected cursor ch_1, got %q", cursor)
	}
}

func TestBodyToRowsCoercionMismatchLeavesNull(t *testing.T) {
	resource := mustCatalogResource(t, "charges")
	// amount is a string upstream; created holds a non-numeric value
	body := `{"object": "list", "has_more": false, "data": [{"id": "ch_1", "amount": "not-a-number", "created": "yesterday", "status": "succeeded"}]}`

	rows, _, _, err := bodyToRows([]byte(body), resource, []string{"id", "amount", "created", "status"})
	if err != nil {
		t.Fatalf("A cell-level mismatch must not fail the decode: %v", err)
	}

	row := rows[0]
	if cell, ok := row.Get("amount"); !ok || cell != nil {
		t.Errorf("Mismatched amount should degrade to NULL, got %v", cell)
	}
	if cell, ok := row.Get("created"); !ok || cell != nil {
		t.Errorf("Invalid timestamp should degrade to NULL, got %v", cell)
	}
	// other fields still materialize
	if cell, _ := row.Get("status"); cell == nil || cell.Str != "succeeded" {
		t.Errorf("Valid sibling field should survive, got %v", cell)
	}
}

func TestBodyToRowsAttrsColumn(t *testing.T) {
	resource := mustCatalogResource(t, "customers")
	body := `{"object": "list", "has_more": false, "data": [{"id": "cus_1", "email": "ada@example.com", "balance": 50, "delinquent": false}]}`

	rows, _, _, err := bodyToRows([]byte(body), resource, []string{"id", core.AttrsColumn})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}

	cell, ok := rows[0].Get(core.AttrsColumn)
	if !ok || cell == nil || cell.Kind != core.CellJSON {
		t.Fatalf("Expected a JSON attrs cell, got %v", cell)
	}

	var attrs map[string]any
	if err := json.Unmarshal(cell.JSON, &attrs); err != nil {
		t.Fatalf("attrs cell should hold valid JSON: %v", err)
	}
	if attrs["balance"] != float64(50) {
		t.Errorf("attrs should carry unmodeled fields, got %v", attrs["balance"])
	}
	if attrs["email"] != "ada@example.com" {
		t.Errorf("attrs should carry the full record, got %v", attrs["email"])
	}
}

// Every catalog resource decodes a well-formed page into exactly the
// records the page holds, with only the requested columns populated.
func TestBodyToRowsAllResources(t *testing.T) {
	for _, resource := range NewCatalog().Resources() {
		if resource.Singleton {
			continue // no list envelope upstream
		}

		t.Run(resource.Name, func(t *testing.T) {
			records := make([]map[string]any, 2)
			for i := range records {
				record := map[string]any{"id": fmt.Sprintf("%s_%d", resource.Name, i)}
				for _, field := range resource.Fields {
					switch field.Type {
					case core.FieldBool:
						record[field.Name] = true
					case core.FieldInt:
						record[field.Name] = 100 + i
					case core.FieldString:
						record[field.Name] = field.Name + "_value"
					case core.FieldTimestamp:
						record[field.Name] = 1685620800
					}
				}
				records[i] = record
			}

			page, err := json.Marshal(map[string]any{
				"object":           "list",
				"has_more":         false,
				resource.ObjectKey: records,
			})
			if err != nil {
				t.Fatalf("Failed to build page: %v", err)
			}

			requested := []string{"id"}
			if len(resource.Fields) > 1 {
				requested = append(requested, resource.Fields[1].Name)
			}

			rows, _, hasMore, err := bodyToRows(page, resource, requested)
			if err != nil {
				t.Fatalf("Decode should succeed: %v", err)
			}
			if len(rows) != len(records) {
				t.Fatalf("Expected %d rows, got %d", len(records), len(rows))
			}
			if hasMore {
				t.Error("has_more=false should stop the loop")
			}
			for _, row := range rows {
				if row.Len() != len(requested) {
					t.Errorf("Expected %d requested columns, got %d", len(requested), row.Len())
				}
			}
		})
	}
}

func TestBodyToRowsMalformedJSON(t *testing.T) {
	resource := mustCatalogResource(t, "customers")

	if _, _, _, err := bodyToRows([]byte(`{"object": "list",`), resource, []string{"id"}); err == nil {
		t.Error("Malformed JSON should fail the decode")
	}
}

func TestRowToBodyScalars(t *testing.T) {
	row := core.NewRow()
	row.Push("email", core.NewStringCell("ada@example.com"))
	row.Push("balance", core.NewIntCell(50))
	row.Push("delinquent", core.NewBoolCell(false))
	row.Push("description", nil) // NULL cells are skipped

	body, err := rowToBody(row)
	if err != nil {
		t.Fatalf("Encode should succeed: %v", err)
	}

	if body["email"] != "ada@example.com" {
		t.Errorf("Expected email in body, got %v", body["email"])
	}
	if body["balance"] != int64(50) {
		t.Errorf("Expected balance 50, got %v", body["balance"])
	}
	if body["delinquent"] != false {
		t.Errorf("Expected delinquent false, got %v", body["delinquent"])
	}
	if _, exists := body["description"]; exists {
		t.Error("NULL cells should not appear in the body")
	}
}

func TestRowToBodyRejectsTimestamp(t *testing.T) {
	row := core.NewRow()
	row.Push("created", core.NewTimestampCell(time.Now()))

	if _, err := rowToBody(row); !errors.Is(err, ErrUnsupportedFieldType) {
		t.Errorf("Timestamp cells should fail the encode, got %v", err)
	}
}

func TestRowToBodyMergesAttrs(t *testing.T) {
	row := core.NewRow()
	row.Push("email", core.NewStringCell("typed@example.com"))
	row.Push(core.AttrsColumn, core.NewJSONCell([]byte(`{"email": "attrs@example.com", "phone": "+123", "metadata": {"tier": "gold"}}`)))

	body, err := rowToBody(row)
	if err != nil {
		t.Fatalf("Encode should succeed: %v", err)
	}

	// typed columns win over attrs duplicates
	if body["email"] != "typed@example.com" {
		t.Errorf("Typed column should take precedence, got %v", body["email"])
	}
	if body["phone"] != "+123" {
		t.Errorf("attrs keys should pass through, got %v", body["phone"])
	}
	if _, exists := body["metadata"]; !exists {
		t.Error("Nested attrs values should pass through")
	}
}

func TestRowToBodyIgnoresJSONCellOutsideAttrs(t *testing.T) {
	row := core.NewRow()
	row.Push("payload", core.NewJSONCell([]byte(`{"a": 1}`)))

	body, err := rowToBody(row)
	if err != nil {
		t.Fatalf("Encode should succeed: %v", err)
	}
	if len(body) != 0 {
		t.Errorf("JSON cells outside the attrs column are not encodable, got %v", body)
	}
}

// Round-trip: a row encoded to a body, serialized as JSON and decoded
// through the same schema reproduces the original scalar values.
func TestScalarRoundTrip(t *testing.T) {
	resource := mustCatalogResource(t, "products")

	row := core.NewRow()
	row.Push("id", core.NewStringCell("prod_1"))
	row.Push("name", core.NewStringCell("Widget"))
	row.Push("active", core.NewBoolCell(true))

	body, err := rowToBody(row)
	if err != nil {
		t.Fatalf("Encode should succeed: %v", err)
	}
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal should succeed: %v", err)
	}

	rows, _, _, err := bodyToRows(raw, resource, []string{"id", "name", "active"})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	decoded := rows[0]
	for _, col := range []string{"id", "name", "active"} {
		want, _ := row.Get(col)
		got, ok := decoded.Get(col)
		if !ok || got == nil {
			t.Fatalf("Column %q lost in round-trip", col)
		}
		if got.String() != want.String() {
			t.Errorf("Column %q: expected %q, got %q", col, want.String(), got.String())
		}
	}
}

// Extra-attributes round-trip: unmodeled fields decoded into attrs and
// re-encoded come back as top-level body fields.
func TestExtraAttrsRoundTrip(t *testing.T) {
	resource := mustCatalogResource(t, "customers")
	page := `{"object": "list", "has_more": false, "data": [{"id": "cus_1", "email": "ada@example.com", "favorite_color": "teal", "loyalty_points": 12}]}`

	rows, _, _, err := bodyToRows([]byte(page), resource, []string{core.AttrsColumn})
	if err != nil {
		t.Fatalf("Decode should succeed: %v", err)
	}

	body, err := rowToBody(rows[0])
	if err != nil {
		t.Fatalf("Encode should succeed: %v", err)
	}

	if body["favorite_color"] != "teal" {
		t.Errorf("Extra field should survive the round-trip, got %v", body["favorite_color"])
	}
	if body["loyalty_points"] != float64(12) {
		t.Errorf("Extra field should survive the round-trip, got %v", body["loyalty_points"])
	}
}

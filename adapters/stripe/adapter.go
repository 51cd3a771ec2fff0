package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/url"

	"github.com/google/uuid"

	"github.com/preslavrachev/stripetable/config"
	"github.com/preslavrachev/stripetable/core"
)

// Adapter implements the core.Adapter interface against the Stripe REST API.
//
// One scan buffers its whole result set during BeginScan; the pagination
// loop is strictly sequential because each page's cursor is the identifier
// of the previous page's last record. A transport or decode failure aborts
// the scan without delivering partial results.
type Adapter struct {
	baseURL *url.URL
	client  *Client
	catalog *core.Catalog

	// scan state, owned by one begin/iterate/end cycle
	scanResult []*core.Row

	// modify state
	obj      *core.Resource
	rowidCol string
}

var _ core.Adapter = (*Adapter)(nil)

// New creates a Stripe adapter. An empty baseURL falls back to the live API
// root.
func New(baseURL string, client *Client) (*Adapter, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api_url %q: %w", baseURL, err)
	}

	return &Adapter{
		baseURL: u,
		client:  client,
		catalog: NewCatalog(),
	}, nil
}

// NewFromOptions creates a Stripe adapter from the option surface
// (api_url, api_key, api_key_id), resolving an api_key_id secret reference
// through the given store when no literal credential is supplied.
func NewFromOptions(opts core.Options, secrets config.SecretStore) (*Adapter, error) {
	apiKey := opts["api_key"]
	if apiKey == "" {
		keyID, err := opts.Require("api_key_id")
		if err != nil {
			return nil, fmt.Errorf("either api_key or api_key_id must be set: %w", err)
		}
		resolved, ok := secrets.Get(keyID)
		if !ok {
			return nil, fmt.Errorf("secret reference %q could not be resolved", keyID)
		}
		apiKey = resolved
	}

	return New(opts.Get("api_url", DefaultBaseURL), NewClient(apiKey))
}

// Catalog exposes the supported resources for callers that want to list or
// inspect schemas
func (a *Adapter) Catalog() *core.Catalog {
	return a.catalog
}

// BeginScan fetches and buffers all pages of the requested resource. The
// caller must re-apply its full predicate set to delivered rows: quals that
// cannot be pushed down are dropped here, which only widens the result.
func (a *Adapter) BeginScan(ctx context.Context, query *core.Query, opts core.Options) error {
	objName, err := opts.Require("object")
	if err != nil {
		return err
	}
	resource, err := a.catalog.Get(objName)
	if err != nil {
		return err
	}

	pageCnt := int64(math.MaxInt64)
	if query.Limit != nil {
		if query.Limit.Count == 0 {
			a.scanResult = nil
			return nil
		}
		pageCnt = (query.Limit.Offset+query.Limit.Count)/PageSize + 1
	}

	var result []*core.Row
	cursor := ""

	for page := int64(0); page < pageCnt; page++ {
		u := buildURL(a.baseURL, resource, query.Quals, PageSize, cursor)

		body, err := a.client.Get(ctx, u)
		if err != nil {
			return fmt.Errorf("scan of %s aborted: %w", resource.Name, err)
		}

		rows, nextCursor, hasMore, err := bodyToRows(body, resource, query.Columns)
		if err != nil {
			return fmt.Errorf("scan of %s aborted: %w", resource.Name, err)
		}
		if len(rows) == 0 {
			break
		}

		result = append(result, rows...)

		if !hasMore {
			break
		}
		cursor = nextCursor
	}

	a.scanResult = result
	return nil
}

// IterScan hands out buffered rows one at a time in fetch order. The second
// return value is false once the scan is drained.
func (a *Adapter) IterScan() (*core.Row, bool) {
	if len(a.scanResult) == 0 {
		return nil, false
	}
	row := a.scanResult[0]
	a.scanResult = a.scanResult[1:]
	return row, true
}

// EndScan discards any buffered scan state
func (a *Adapter) EndScan() {
	a.scanResult = nil
}

// BeginModify fixes the target resource and identifier column for the
// following Insert/Update/Delete calls
func (a *Adapter) BeginModify(opts core.Options) error {
	objName, err := opts.Require("object")
	if err != nil {
		return err
	}
	resource, err := a.catalog.Get(objName)
	if err != nil {
		return err
	}
	rowidCol, err := opts.Require("rowid_column")
	if err != nil {
		return err
	}

	a.obj = resource
	a.rowidCol = rowidCol
	return nil
}

// Insert creates a new record from the row and confirms the generated
// identifier from the response
func (a *Adapter) Insert(ctx context.Context, row *core.Row) error {
	if a.obj == nil {
		return fmt.Errorf("modify has not been started")
	}

	body, err := rowToBody(row)
	if err != nil {
		return err
	}

	u := a.baseURL.JoinPath(a.obj.Name)
	resp, err := a.client.PostForm(ctx, u, body, uuid.NewString())
	if err != nil {
		return fmt.Errorf("insert into %s failed: %w", a.obj.Name, err)
	}

	if id := extractID(resp); id != "" {
		log.Printf("[stripe] inserted %s %s", a.obj.Name, id)
	}
	return nil
}

// Update posts the row to {resource}/{id}. The row identifier must be a
// string cell; anything else means the caller supplied the wrong identifier
// representation.
func (a *Adapter) Update(ctx context.Context, rowid *core.Cell, row *core.Row) error {
	if a.obj == nil {
		return fmt.Errorf("modify has not been started")
	}

	id, err := a.rowidString(rowid)
	if err != nil {
		return err
	}

	body, err := rowToBody(row)
	if err != nil {
		return err
	}

	u := a.baseURL.JoinPath(a.obj.Name, id)
	resp, err := a.client.PostForm(ctx, u, body, "")
	if err != nil {
		return fmt.Errorf("update of %s %s failed: %w", a.obj.Name, id, err)
	}

	if confirmed := extractID(resp); confirmed != "" {
		log.Printf("[stripe] updated %s %s", a.obj.Name, confirmed)
	}
	return nil
}

// Delete removes the record at {resource}/{id}
func (a *Adapter) Delete(ctx context.Context, rowid *core.Cell) error {
	if a.obj == nil {
		return fmt.Errorf("modify has not been started")
	}

	id, err := a.rowidString(rowid)
	if err != nil {
		return err
	}

	u := a.baseURL.JoinPath(a.obj.Name, id)
	resp, err := a.client.Delete(ctx, u)
	if err != nil {
		return fmt.Errorf("delete of %s %s failed: %w", a.obj.Name, id, err)
	}

	if confirmed := extractID(resp); confirmed != "" {
		log.Printf("[stripe] deleted %s %s", a.obj.Name, confirmed)
	}
	return nil
}

// EndModify clears the modify state
func (a *Adapter) EndModify() {
	a.obj = nil
	a.rowidCol = ""
}

func (a *Adapter) rowidString(rowid *core.Cell) (string, error) {
	if rowid == nil || rowid.Kind != core.CellString {
		return "", fmt.Errorf("rowid column %q must hold a string identifier, got %s", a.rowidCol, rowid.KindName())
	}
	return rowid.Str, nil
}

// extractID pulls the confirmation identifier out of a write response body
func extractID(body []byte) string {
	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	return resp.ID
}

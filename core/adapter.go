package core

import "context"

// Adapter defines the interface for data source adapters exposing an
// external collection as a sequence of typed rows.
//
// A scan is a begin/iterate/end lifecycle: BeginScan fetches and buffers the
// whole result set, IterScan drains it one row at a time, EndScan discards
// whatever is left. Only quals with an equals operator may be translated
// into upstream filters; all others are dropped, so the caller must
// re-apply its full predicate set to the delivered rows.
//
// Mutations follow the same shape: BeginModify fixes the target resource
// and identifier column, then Insert/Update/Delete each issue one
// synchronous upstream call.
type Adapter interface {
	// Scan operations
	BeginScan(ctx context.Context, query *Query, opts Options) error
	IterScan() (*Row, bool)
	EndScan()

	// Mutation operations
	BeginModify(opts Options) error
	Insert(ctx context.Context, row *Row) error
	Update(ctx context.Context, rowid *Cell, row *Row) error
	Delete(ctx context.Context, rowid *Cell) error
	EndModify()
}

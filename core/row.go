package core

// Row is an ordered mapping from column name to an optional typed cell.
// Columns keep the order in which they were pushed, matching the order the
// caller requested them in.
type Row struct {
	cols  []string
	cells []*Cell
}

// NewRow creates an empty row
func NewRow() *Row {
	return &Row{}
}

// Push appends a column with its cell value. A nil cell records a NULL.
func (r *Row) Push(col string, cell *Cell) {
	r.cols = append(r.cols, col)
	r.cells = append(r.cells, cell)
}

// Get returns the cell for a column name. The second return value reports
// whether the column is present at all, so a present-but-NULL column can be
// told apart from a missing one.
func (r *Row) Get(col string) (*Cell, bool) {
	for i, c := range r.cols {
		if c == col {
			return r.cells[i], true
		}
	}
	return nil, false
}

// Columns returns the column names in push order
func (r *Row) Columns() []string {
	return r.cols
}

// Cells returns the cells in push order
func (r *Row) Cells() []*Cell {
	return r.cells
}

// Len returns the number of columns in the row
func (r *Row) Len() int {
	return len(r.cols)
}

package model

import "fmt"

// Column names used by the supported table layout, and the derived columns
// appended by the pipeline. Names are case-sensitive, matching the source
// file convention.
const (
	ColTime    = "TIME"
	ColFlux    = "SAP_FLUX"
	ColFluxErr = "SAP_FLUX_ERR"

	ColShiftedTime = "BJD_TDB"
	ColMag         = "Source_AMag_T1"
	ColMagErr      = "Source_AMag_Error_T1"
)

// MetaRefMag is the global metadata key carrying the reference magnitude.
const MetaRefMag = "TESSMAG"

// Column is a single named series of floating point values. Mask, when
// non-nil, runs parallel to Values; Mask[i] == true flags Values[i] as
// explicitly invalid regardless of its numeric content.
type Column struct {
	Name   string
	Values []float64
	Mask   []bool
}

// Table is an ordered set of equal-length columns. Row i refers to the same
// observation in every column.
type Table struct {
	cols  []Column
	index map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the shared row count of all columns.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in append order.
func (t *Table) Columns() []Column { return t.cols }

// Names returns the column names in append order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Col looks up a column by name.
func (t *Table) Col(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

func (t *Table) HasCol(name string) bool {
	_, ok := t.index[name]
	return ok
}

// AddColumn appends a column. The column must match the table's row count
// and carry a name not already present.
func (t *Table) AddColumn(c Column) error {
	if _, dup := t.index[c.Name]; dup {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && len(c.Values) != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, len(c.Values), t.NumRows())
	}
	if c.Mask != nil && len(c.Mask) != len(c.Values) {
		return fmt.Errorf("column %q mask length %d does not match %d values", c.Name, len(c.Mask), len(c.Values))
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Select returns a new table containing only the rows where keep[i] is true.
// The same row indices are dropped from every column, masks included.
func (t *Table) Select(keep []bool) *Table {
	out := NewTable()
	for _, c := range t.cols {
		nc := Column{Name: c.Name}
		for i, v := range c.Values {
			if !keep[i] {
				continue
			}
			nc.Values = append(nc.Values, v)
			if c.Mask != nil {
				nc.Mask = append(nc.Mask, c.Mask[i])
			}
		}
		out.index[nc.Name] = len(out.cols)
		out.cols = append(out.cols, nc)
	}
	return out
}

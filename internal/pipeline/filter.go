package pipeline

import (
	"fmt"
	"math"

	"lightcurve-export/internal/model"
)

// ------------------- Validity Filter -------------------

// MaskedRows reports, per row, whether a column value is invalid: the
// explicit mask flags it OR the value is NaN. The two signals are
// independent; neither implies the other.
func MaskedRows(c *model.Column) []bool {
	masked := make([]bool, len(c.Values))
	for i, v := range c.Values {
		explicit := c.Mask != nil && c.Mask[i]
		masked[i] = explicit || math.IsNaN(v)
	}
	return masked
}

// FilterValid returns a new table keeping only the rows where the named
// column is not masked. Filtering by several columns is order-independent:
// each pass is a per-row predicate on one column.
func FilterValid(t *model.Table, name string) (*model.Table, error) {
	col, ok := t.Col(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnMissing, name)
	}
	masked := MaskedRows(col)
	keep := make([]bool, len(masked))
	for i, m := range masked {
		keep[i] = !m
	}
	return t.Select(keep), nil
}

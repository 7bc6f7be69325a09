package pipeline

import (
	"fmt"

	"lightcurve-export/internal/model"
)

// Container is the external multi-segment file collaborator. The production
// implementation lives in internal/fitsfile; the pipeline only depends on
// this interface.
type Container interface {
	SegmentCount() int
	SegmentType(index int) model.SegmentKind
	ReadTable(index int) (*model.Table, []string, error)
	GlobalMetadata(index int) (map[string]interface{}, error)
	Close() error
}

// ------------------- TableSegment Loader -------------------

// LoadSegment materializes one table segment into an in-memory table.
// It returns loader warnings (columns the container could not represent)
// alongside the table.
func LoadSegment(c Container, index int) (*model.Table, []string, error) {
	if index < 0 || index >= c.SegmentCount() {
		return nil, nil, fmt.Errorf("%w: segment %d, file has %d segment(s)",
			ErrSegmentIndex, index, c.SegmentCount())
	}
	if kind := c.SegmentType(index); kind != model.SegmentTable {
		return nil, nil, fmt.Errorf("%w: segment %d is %s", ErrSegmentType, index, kind)
	}

	table, warnings, err := c.ReadTable(index)
	if err != nil {
		return nil, warnings, fmt.Errorf("reading segment %d: %w", index, err)
	}
	if table.NumCols() == 0 || table.NumRows() == 0 {
		return nil, warnings, fmt.Errorf("%w: segment %d", ErrEmptyTable, index)
	}
	return table, warnings, nil
}

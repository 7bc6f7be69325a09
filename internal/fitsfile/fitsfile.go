// Package fitsfile adapts a FITS container to the segment/table interface
// the pipeline consumes. All access is read-only.
package fitsfile

import (
	"fmt"
	"os"

	"github.com/astrogo/fitsio"

	"lightcurve-export/internal/model"
	"lightcurve-export/pkg/utils"
)

// File is an open FITS container.
type File struct {
	src  *os.File
	fits *fitsio.File
}

// Open opens path read-only and parses its segment structure.
func Open(path string) (*File, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	f, err := fitsio.Open(src)
	if err != nil {
		src.Close()
		return nil, err
	}
	return &File{src: src, fits: f}, nil
}

// Close releases the parsed structure and the underlying file.
func (f *File) Close() error {
	err := f.fits.Close()
	if cerr := f.src.Close(); err == nil {
		err = cerr
	}
	return err
}

func (f *File) SegmentCount() int { return len(f.fits.HDUs()) }

// SegmentName returns the segment's extension name, empty when unnamed.
func (f *File) SegmentName(i int) string {
	hdus := f.fits.HDUs()
	if i < 0 || i >= len(hdus) {
		return ""
	}
	return hdus[i].Name()
}

// SegmentDims returns segment i's data axis lengths, nil when it has none.
func (f *File) SegmentDims(i int) []int {
	hdus := f.fits.HDUs()
	if i < 0 || i >= len(hdus) {
		return nil
	}
	return hdus[i].Header().Axes()
}

// SegmentType classifies segment i. Image segments without data axes are
// reported as empty.
func (f *File) SegmentType(i int) model.SegmentKind {
	hdus := f.fits.HDUs()
	if i < 0 || i >= len(hdus) {
		return model.SegmentUnknown
	}
	switch hdus[i].Type() {
	case fitsio.BINARY_TBL, fitsio.ASCII_TBL:
		return model.SegmentTable
	case fitsio.IMAGE_HDU:
		if len(hdus[i].Header().Axes()) == 0 {
			return model.SegmentEmpty
		}
		return model.SegmentImage
	default:
		return model.SegmentUnknown
	}
}

// ReadTable materializes segment i into a column-oriented table. Columns
// that are not numeric scalars (strings, logical flags, per-cell arrays)
// cannot be represented and are skipped with a warning.
func (f *File) ReadTable(i int) (*model.Table, []string, error) {
	hdus := f.fits.HDUs()
	if i < 0 || i >= len(hdus) {
		return nil, nil, fmt.Errorf("segment %d out of range", i)
	}
	tbl, ok := hdus[i].(*fitsio.Table)
	if !ok {
		return nil, nil, fmt.Errorf("segment %d is not a table", i)
	}

	names := make([]string, 0, tbl.NumCols())
	for _, col := range tbl.Cols() {
		names = append(names, col.Name)
	}

	rows, err := tbl.Read(0, tbl.NumRows())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	raw := make([]map[string]interface{}, 0, tbl.NumRows())
	for rows.Next() {
		rec := make(map[string]interface{}, len(names))
		if err := rows.Scan(&rec); err != nil {
			return nil, nil, err
		}
		raw = append(raw, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	table := model.NewTable()
	var warnings []string
	for _, name := range names {
		values := make([]float64, len(raw))
		numeric := true
		for j, rec := range raw {
			v, ok := utils.Float64(rec[name])
			if !ok {
				numeric = false
				break
			}
			values[j] = v
		}
		if !numeric {
			warnings = append(warnings, fmt.Sprintf("column %s skipped: not a numeric scalar", name))
			continue
		}
		if err := table.AddColumn(model.Column{Name: name, Values: values}); err != nil {
			return nil, warnings, err
		}
	}
	return table, warnings, nil
}

// SegmentHeader returns segment i's header cards in file order.
func (f *File) SegmentHeader(i int) ([]model.HeaderCard, error) {
	hdus := f.fits.HDUs()
	if i < 0 || i >= len(hdus) {
		return nil, fmt.Errorf("segment %d out of range", i)
	}
	hdr := hdus[i].Header()
	keys := hdr.Keys()
	cards := make([]model.HeaderCard, 0, len(keys))
	for _, key := range keys {
		if card := hdr.Get(key); card != nil {
			cards = append(cards, model.HeaderCard{
				Name:    card.Name,
				Value:   card.Value,
				Comment: card.Comment,
			})
		}
	}
	return cards, nil
}

// GlobalMetadata returns segment i's header as a key to value mapping.
func (f *File) GlobalMetadata(i int) (map[string]interface{}, error) {
	cards, err := f.SegmentHeader(i)
	if err != nil {
		return nil, err
	}
	meta := make(map[string]interface{}, len(cards))
	for _, c := range cards {
		meta[c.Name] = c.Value
	}
	return meta, nil
}

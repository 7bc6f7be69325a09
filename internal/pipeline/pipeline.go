package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"os"

	"lightcurve-export/internal/fitsfile"
	"lightcurve-export/internal/model"
	"lightcurve-export/pkg/utils"
)

// DefaultSegment is the table segment holding the light curve in this
// file family.
const DefaultSegment = 1

// Options configure one pipeline invocation.
type Options struct {
	InputPath string
	DestPath  string // default: InputPath with its extension replaced by .csv
	Segment   int    // table segment index
	Overwrite bool
	ZeroPoint *float64 // overrides the file's reference magnitude
}

// Result carries the outcome of a run plus any non-fatal advisories
// accumulated along the way. It is returned (partially filled) even when
// the run fails, so callers can still surface warnings.
type Result struct {
	CSVPath   string
	RowsIn    int
	RowsOut   int
	ZeroPoint float64 // NaN when no finite instrumental magnitude existed
	Warnings  []string
}

// ------------------- Pipeline Runner -------------------

// Run executes the full pipeline for one file: load the table segment,
// filter invalid rows, derive the calibrated-magnitude columns, export CSV.
// The stages run strictly in sequence; the table never escapes this
// invocation and the container is closed on every path.
func Run(opts Options) (*Result, error) {
	if _, err := os.Stat(opts.InputPath); err != nil {
		return &Result{ZeroPoint: math.NaN()}, fmt.Errorf("%w: %s", ErrInputNotFound, opts.InputPath)
	}
	c, err := fitsfile.Open(opts.InputPath)
	if err != nil {
		return &Result{ZeroPoint: math.NaN()}, fmt.Errorf("%w: %v", ErrContainerOpen, err)
	}
	defer c.Close()
	return run(c, opts)
}

func run(c Container, opts Options) (*Result, error) {
	res := &Result{ZeroPoint: math.NaN()}

	dest := opts.DestPath
	if dest == "" {
		dest = utils.ReplaceExt(opts.InputPath, ".csv")
	}
	res.CSVPath = dest

	// Refuse an existing destination before doing any work.
	if !opts.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return res, fmt.Errorf("%w: %s", ErrDestinationExists, dest)
		}
	}

	table, warns, err := LoadSegment(c, opts.Segment)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		return res, err
	}
	res.RowsIn = table.NumRows()
	slog.Info("table segment loaded",
		"segment", opts.Segment, "rows", res.RowsIn, "columns", table.NumCols())

	// Time filtering is optional; flux filtering is not.
	if table.HasCol(model.ColTime) {
		if table, err = FilterValid(table, model.ColTime); err != nil {
			return res, err
		}
	}
	if !table.HasCol(model.ColFlux) {
		return res, fmt.Errorf("%w: %s (cannot derive %s)",
			ErrColumnMissing, model.ColFlux, model.ColMag)
	}
	if table, err = FilterValid(table, model.ColFlux); err != nil {
		return res, err
	}
	res.RowsOut = table.NumRows()
	slog.Info("validity filtering done", "rows_in", res.RowsIn, "rows_out", res.RowsOut)

	refMag := opts.ZeroPoint
	if refMag == nil {
		refMag = referenceMagnitude(c)
	}

	zp, dwarns, err := Derive(table, refMag)
	res.ZeroPoint = zp
	res.Warnings = append(res.Warnings, dwarns...)
	if err != nil {
		return res, err
	}

	if err := ExportCSV(table, dest, opts.Overwrite); err != nil {
		return res, err
	}
	slog.Info("export complete", "path", dest, "rows", res.RowsOut)
	return res, nil
}

// referenceMagnitude reads the reference magnitude from the primary
// segment's metadata; nil when the file carries none.
func referenceMagnitude(c Container) *float64 {
	meta, err := c.GlobalMetadata(0)
	if err != nil {
		return nil
	}
	if v, ok := utils.Float64(meta[model.MetaRefMag]); ok {
		return &v
	}
	return nil
}

package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"lightcurve-export/internal/model"
)

// ------------------- Exporter -------------------

// ExportCSV serializes the table to dest: a header row of column names in
// append order, then one row per table row. Values use a locale-independent
// decimal format; non-finite values are written as NaN/+Inf/-Inf.
//
// The file is written to a temporary sibling path and renamed into place so
// a failed write never leaves a truncated destination.
func ExportCSV(t *model.Table, dest string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dest)
		}
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := writeCSV(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func writeCSV(f *os.File, t *model.Table) error {
	w := csv.NewWriter(f)

	if err := w.Write(t.Names()); err != nil {
		return err
	}

	cols := t.Columns()
	row := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j := range cols {
			row[j] = strconv.FormatFloat(cols[j].Values[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

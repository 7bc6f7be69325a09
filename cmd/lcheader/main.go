// Command lcheader prints a FITS file's segment inventory and header cards,
// and optionally previews the first rows of a table segment.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"lightcurve-export/internal/fitsfile"
	"lightcurve-export/internal/pipeline"
	"lightcurve-export/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lcheader", flag.ContinueOnError)
	previewSeg := fs.Int("preview-segment", -1, "if set, print the first rows of this table segment")
	rows := fs.Int("rows", 10, "number of rows to preview with -preview-segment")
	if err := fs.Parse(args); err != nil {
		return pipeline.ExitInputNotFound
	}

	path := utils.ResolvePath(fs.Arg(0))
	if path == "" {
		slog.Error("a FITS filepath is required")
		fs.Usage()
		return pipeline.ExitInputNotFound
	}
	if _, err := os.Stat(path); err != nil {
		slog.Error("file not found", "path", path)
		return pipeline.ExitInputNotFound
	}

	f, err := fitsfile.Open(path)
	if err != nil {
		slog.Error("cannot open FITS file", "path", path, "error", err)
		return pipeline.ExitOpenFailure
	}
	defer f.Close()

	printSegments(f)

	if *previewSeg >= 0 {
		if err := printPreview(f, *previewSeg, *rows); err != nil {
			slog.Error("table preview failed", "segment", *previewSeg, "error", err)
			return pipeline.ExitCode(err)
		}
	}
	return pipeline.ExitOK
}

func printSegments(f *fitsfile.File) {
	for i := 0; i < f.SegmentCount(); i++ {
		name := f.SegmentName(i)
		if name == "" {
			name = "(unnamed)"
		}
		dims := ""
		if axes := f.SegmentDims(i); len(axes) > 0 {
			parts := make([]string, len(axes))
			for j, a := range axes {
				parts[j] = strconv.Itoa(a)
			}
			dims = " " + strings.Join(parts, "x")
		}
		fmt.Printf("\n=== Segment %d: %s [%s%s] ===\n", i, name, f.SegmentType(i), dims)

		cards, err := f.SegmentHeader(i)
		if err != nil {
			slog.Warn("cannot read segment header", "segment", i, "error", err)
			continue
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
		for _, c := range cards {
			fmt.Fprintf(w, "%s\t= %v\t/ %s\n", c.Name, c.Value, c.Comment)
		}
		w.Flush()
	}
}

func printPreview(f *fitsfile.File, index, n int) error {
	table, warnings, err := pipeline.LoadSegment(f, index)
	for _, warn := range warnings {
		slog.Warn(warn)
	}
	if err != nil {
		return err
	}

	if n < 0 {
		n = 0
	}
	if n > table.NumRows() {
		n = table.NumRows()
	}
	fmt.Printf("\n--- First %d rows of segment %d (numeric columns) ---\n", n, index)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Names(), "\t"))
	cols := table.Columns()
	for i := 0; i < n; i++ {
		fields := make([]string, len(cols))
		for j := range cols {
			fields[j] = strconv.FormatFloat(cols[j].Values[i], 'g', -1, 64)
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	return w.Flush()
}

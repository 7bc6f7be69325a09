// Command lc2csv exports the light-curve table segment of a FITS file to a
// CSV file next to the input.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lightcurve-export/internal/pipeline"
	"lightcurve-export/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lc2csv", flag.ContinueOnError)
	overwrite := fs.Bool("overwrite", false, "allow overwriting the destination CSV file if it exists")
	zeroPoint := fs.Float64("zero-point", 0.0, "reference magnitude override (default: the file's embedded reference)")
	segment := fs.Int("segment", pipeline.DefaultSegment, "table segment index to export")
	if err := fs.Parse(args); err != nil {
		return pipeline.ExitInputNotFound
	}

	path := utils.ResolvePath(fs.Arg(0))
	if path == "" {
		slog.Error("a FITS filepath is required")
		fs.Usage()
		return pipeline.ExitInputNotFound
	}

	opts := pipeline.Options{
		InputPath: path,
		Segment:   *segment,
		Overwrite: *overwrite,
	}
	// The override only applies when the flag was given explicitly; an
	// untouched default means "use the file's reference magnitude".
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "zero-point" {
			opts.ZeroPoint = zeroPoint
		}
	})

	res, err := pipeline.Run(opts)
	for _, warn := range res.Warnings {
		slog.Warn(warn)
	}
	if err != nil {
		slog.Error("export failed", "error", err)
		return pipeline.ExitCode(err)
	}

	fmt.Printf("Wrote CSV: %s\n", res.CSVPath)
	return pipeline.ExitOK
}

package pipeline

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightcurve-export/internal/model"
)

// fakeContainer stands in for a FITS file in runner tests.
type fakeContainer struct {
	kinds  []model.SegmentKind
	tables map[int]*model.Table
	meta   map[string]interface{}
	warns  []string
	closed bool
}

func (f *fakeContainer) SegmentCount() int                  { return len(f.kinds) }
func (f *fakeContainer) SegmentType(i int) model.SegmentKind { return f.kinds[i] }

func (f *fakeContainer) ReadTable(i int) (*model.Table, []string, error) {
	tbl, ok := f.tables[i]
	if !ok {
		return model.NewTable(), f.warns, nil
	}
	return tbl, f.warns, nil
}

func (f *fakeContainer) GlobalMetadata(i int) (map[string]interface{}, error) {
	if f.meta == nil {
		return nil, fmt.Errorf("no metadata")
	}
	return f.meta, nil
}

func (f *fakeContainer) Close() error {
	f.closed = true
	return nil
}

func lightCurveContainer(t *testing.T, meta map[string]interface{}) *fakeContainer {
	t.Helper()
	tbl := model.NewTable()
	mustAdd(t, tbl, model.Column{Name: model.ColTime, Values: []float64{1, 2, math.NaN(), 4, 5}})
	mustAdd(t, tbl, model.Column{Name: model.ColFlux, Values: []float64{10, -1, 10, 0, 20}})
	mustAdd(t, tbl, model.Column{Name: model.ColFluxErr, Values: []float64{1, 1, 1, 1, 2}})
	return &fakeContainer{
		kinds:  []model.SegmentKind{model.SegmentEmpty, model.SegmentTable},
		tables: map[int]*model.Table{1: tbl},
		meta:   meta,
	}
}

func TestRunFullPipeline(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "lc.csv")
	c := lightCurveContainer(t, map[string]interface{}{model.MetaRefMag: 10.0})

	res, err := run(c, Options{InputPath: "in.fits", DestPath: dest, Segment: 1})
	require.NoError(t, err)

	assert.Equal(t, 5, res.RowsIn)
	assert.Equal(t, 4, res.RowsOut) // NaN time row dropped
	assert.Equal(t, dest, res.CSVPath)
	assert.False(t, math.IsNaN(res.ZeroPoint))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "TIME,SAP_FLUX,SAP_FLUX_ERR,BJD_TDB,Source_AMag_T1,Source_AMag_Error_T1")
}

func TestRunIsIdempotentWithOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "lc.csv")
	meta := map[string]interface{}{model.MetaRefMag: 10.0}

	_, err := run(lightCurveContainer(t, meta), Options{InputPath: "in.fits", DestPath: dest, Segment: 1, Overwrite: true})
	require.NoError(t, err)
	first, err := os.ReadFile(dest)
	require.NoError(t, err)

	_, err = run(lightCurveContainer(t, meta), Options{InputPath: "in.fits", DestPath: dest, Segment: 1, Overwrite: true})
	require.NoError(t, err)
	second, err := os.ReadFile(dest)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunMissingReferenceMagnitudeWarns(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "lc.csv")
	c := lightCurveContainer(t, map[string]interface{}{})

	res, err := run(c, Options{InputPath: "in.fits", DestPath: dest, Segment: 1})
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], model.MetaRefMag)
}

func TestRunZeroPointOverrideBeatsMetadata(t *testing.T) {
	dir := t.TempDir()
	meta := map[string]interface{}{model.MetaRefMag: 10.0}
	override := 15.0

	fromFile, err := run(lightCurveContainer(t, meta),
		Options{InputPath: "in.fits", DestPath: filepath.Join(dir, "a.csv"), Segment: 1})
	require.NoError(t, err)

	overridden, err := run(lightCurveContainer(t, meta),
		Options{InputPath: "in.fits", DestPath: filepath.Join(dir, "b.csv"), Segment: 1, ZeroPoint: &override})
	require.NoError(t, err)

	assert.InDelta(t, 5.0, overridden.ZeroPoint-fromFile.ZeroPoint, 1e-12)
	assert.Empty(t, overridden.Warnings)
}

func TestRunSegmentIndexOutOfRange(t *testing.T) {
	c := lightCurveContainer(t, nil)

	_, err := run(c, Options{InputPath: "in.fits", DestPath: filepath.Join(t.TempDir(), "lc.csv"), Segment: 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSegmentIndex))
	assert.Equal(t, ExitStructural, ExitCode(err))
}

func TestRunSegmentNotATable(t *testing.T) {
	c := lightCurveContainer(t, nil)

	_, err := run(c, Options{InputPath: "in.fits", DestPath: filepath.Join(t.TempDir(), "lc.csv"), Segment: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSegmentType))
}

func TestRunEmptyTable(t *testing.T) {
	c := &fakeContainer{
		kinds:  []model.SegmentKind{model.SegmentEmpty, model.SegmentTable},
		tables: map[int]*model.Table{},
	}

	_, err := run(c, Options{InputPath: "in.fits", DestPath: filepath.Join(t.TempDir(), "lc.csv"), Segment: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyTable))
}

func TestRunRequiredColumnMissing(t *testing.T) {
	tbl := model.NewTable()
	mustAdd(t, tbl, model.Column{Name: model.ColTime, Values: []float64{1, 2}})
	c := &fakeContainer{
		kinds:  []model.SegmentKind{model.SegmentTable},
		tables: map[int]*model.Table{0: tbl},
	}

	_, err := run(c, Options{InputPath: "in.fits", DestPath: filepath.Join(t.TempDir(), "lc.csv"), Segment: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnMissing))
	assert.Equal(t, ExitStructural, ExitCode(err))
}

func TestRunDestinationExistsBeforeAnyWork(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "lc.csv")
	require.NoError(t, os.WriteFile(dest, []byte("keep me\n"), 0644))

	c := lightCurveContainer(t, nil)
	_, err := run(c, Options{InputPath: "in.fits", DestPath: dest, Segment: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "keep me\n", string(data))
}

func TestRunDefaultsDestinationNextToInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "obs.fits")

	c := lightCurveContainer(t, map[string]interface{}{model.MetaRefMag: 10.0})
	res, err := run(c, Options{InputPath: input, Segment: 1})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "obs.csv"), res.CSVPath)
}

func TestRunInputNotFound(t *testing.T) {
	_, err := Run(Options{InputPath: filepath.Join(t.TempDir(), "nope.fits"), Segment: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.Equal(t, ExitInputNotFound, ExitCode(err))
}

func TestRunContainerOpenFailure(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bogus.fits")
	require.NoError(t, os.WriteFile(input, []byte("this is not a FITS file"), 0644))

	_, err := Run(Options{InputPath: input, Segment: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContainerOpen))
	assert.Equal(t, ExitOpenFailure, ExitCode(err))
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitOK},
		{ErrInputNotFound, ExitInputNotFound},
		{ErrContainerOpen, ExitOpenFailure},
		{ErrSegmentIndex, ExitStructural},
		{ErrSegmentType, ExitStructural},
		{ErrEmptyTable, ExitStructural},
		{ErrColumnMissing, ExitStructural},
		{ErrDestinationExists, ExitWriteFailure},
		{ErrWrite, ExitWriteFailure},
		{errors.New("anything else"), ExitUnexpected},
		{fmt.Errorf("wrapped: %w", ErrSegmentType), ExitStructural},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExitCode(tc.err))
	}
}

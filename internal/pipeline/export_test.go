package pipeline

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightcurve-export/internal/model"
)

func exportTable(t *testing.T) *model.Table {
	t.Helper()
	tbl := model.NewTable()
	mustAdd(t, tbl, model.Column{Name: model.ColTime, Values: []float64{1, 2.5}})
	mustAdd(t, tbl, model.Column{Name: model.ColFlux, Values: []float64{10, math.NaN()}})
	return tbl
}

func TestExportCSVWritesHeaderAndRows(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, ExportCSV(exportTable(t), dest, false))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "TIME,SAP_FLUX\n1,10\n2.5,NaN\n", string(data))
}

func TestExportCSVDestinationExistsGuard(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ExportCSV(exportTable(t), dest, false))
	before, err := os.ReadFile(dest)
	require.NoError(t, err)

	other := model.NewTable()
	mustAdd(t, other, model.Column{Name: model.ColFlux, Values: []float64{99}})
	err = ExportCSV(other, dest, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDestinationExists))

	// First file's content is untouched.
	after, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestExportCSVOverwriteIsIdempotent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.csv")
	tbl := exportTable(t)

	require.NoError(t, ExportCSV(tbl, dest, false))
	first, err := os.ReadFile(dest)
	require.NoError(t, err)

	require.NoError(t, ExportCSV(tbl, dest, true))
	second, err := os.ReadFile(dest)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExportCSVLeavesNoTemporaryFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.csv")

	require.NoError(t, ExportCSV(exportTable(t), dest, false))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestExportCSVNonFiniteValues(t *testing.T) {
	tbl := model.NewTable()
	mustAdd(t, tbl, model.Column{Name: model.ColMag, Values: []float64{math.NaN(), math.Inf(1), math.Inf(-1)}})
	dest := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, ExportCSV(tbl, dest, false))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "Source_AMag_T1\nNaN\n+Inf\n-Inf\n", string(data))
}

func TestExportCSVWriteFailure(t *testing.T) {
	// Destination directory does not exist: the temporary file cannot be
	// created and no destination appears.
	dest := filepath.Join(t.TempDir(), "missing", "out.csv")

	err := ExportCSV(exportTable(t), dest, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}

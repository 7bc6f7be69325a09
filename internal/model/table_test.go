package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColumnAndLookup(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn(Column{Name: ColTime, Values: []float64{1, 2, 3}}))
	require.NoError(t, tbl.AddColumn(Column{Name: ColFlux, Values: []float64{10, 20, 30}}))

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []string{ColTime, ColFlux}, tbl.Names())

	c, ok := tbl.Col(ColFlux)
	require.True(t, ok)
	assert.Equal(t, []float64{10, 20, 30}, c.Values)

	_, ok = tbl.Col("NO_SUCH")
	assert.False(t, ok)
	assert.True(t, tbl.HasCol(ColTime))
	assert.False(t, tbl.HasCol("NO_SUCH"))
}

func TestAddColumnRejectsDuplicateName(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn(Column{Name: ColTime, Values: []float64{1}}))

	err := tbl.AddColumn(Column{Name: ColTime, Values: []float64{2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestAddColumnRejectsRowCountMismatch(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn(Column{Name: ColTime, Values: []float64{1, 2, 3}}))

	err := tbl.AddColumn(Column{Name: ColFlux, Values: []float64{10}})
	require.Error(t, err)
}

func TestAddColumnRejectsMaskLengthMismatch(t *testing.T) {
	tbl := NewTable()
	err := tbl.AddColumn(Column{Name: ColFlux, Values: []float64{1, 2}, Mask: []bool{true}})
	require.Error(t, err)
}

func TestEmptyTable(t *testing.T) {
	tbl := NewTable()
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumCols())
	assert.Empty(t, tbl.Names())
}

func TestSelectDropsSameRowsEverywhere(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn(Column{Name: ColTime, Values: []float64{1, 2, 3, 4}}))
	require.NoError(t, tbl.AddColumn(Column{
		Name:   ColFlux,
		Values: []float64{10, 20, 30, 40},
		Mask:   []bool{false, true, false, true},
	}))

	out := tbl.Select([]bool{true, false, true, false})

	assert.Equal(t, 2, out.NumRows())
	timeCol, ok := out.Col(ColTime)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 3}, timeCol.Values)
	assert.Nil(t, timeCol.Mask)

	fluxCol, ok := out.Col(ColFlux)
	require.True(t, ok)
	assert.Equal(t, []float64{10, 30}, fluxCol.Values)
	assert.Equal(t, []bool{false, false}, fluxCol.Mask)
}

func TestSelectKeepsColumnOrderAndIndex(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn(Column{Name: ColFlux, Values: []float64{10, 20}}))
	require.NoError(t, tbl.AddColumn(Column{Name: ColTime, Values: []float64{1, 2}}))

	out := tbl.Select([]bool{false, true})
	assert.Equal(t, []string{ColFlux, ColTime}, out.Names())

	c, ok := out.Col(ColTime)
	require.True(t, ok)
	assert.Equal(t, []float64{2}, c.Values)
}

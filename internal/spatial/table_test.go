package spatial

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable(t *testing.T) {
	table, err := LoadTable(filepath.Join("testdata", "default_bbox.csv"))
	require.NoError(t, err)
	require.Len(t, table, 2)

	dane := table.Lookup("Dane")
	require.NotNil(t, dane)
	assert.Equal(t, BBox{West: -89.84, East: -89.0, North: 43.29, South: 42.84}, *dane)
	assert.Nil(t, table.Lookup("Nowhere"))
	assert.Nil(t, table.Lookup(""))
}

func TestLoadTable_Missing(t *testing.T) {
	_, err := LoadTable("testdata/nope.csv")
	var tErr *TableError
	require.True(t, errors.As(err, &tErr))
	assert.Contains(t, err.Error(), "cannot open")
}

func TestReadTable_ColumnOrderAndBOM(t *testing.T) {
	csv := "\ufeffname,south,north,east,west\nX,1,2,4,3\n"
	table, err := ReadTable("mem", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, BBox{West: 3, East: 4, North: 2, South: 1}, table["X"])
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		contains string
	}{
		{"empty", "", "missing header"},
		{"missing column", "name,west,east,north\nX,1,2,3\n", `missing column "south"`},
		{"bad number", "name,west,east,north,south\nX,a,2,3,4\n", "line 2: bad west value"},
		{"short row", "name,west,east,north,south\nX,1,2\n", "missing north value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable("mem", strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNilTableLookup(t *testing.T) {
	var table Table
	assert.Nil(t, table.Lookup("Dane"))
}

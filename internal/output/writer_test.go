package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/aardvark-harvest/internal/aardvark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_CreatesDirectoryAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	refs := `{"http://schema.org/url":"https://x?a=1&b=2"}`
	path, err := w.Write(aardvark.Record{ID: "SiteX-abc123", Title: "Parks", References: &refs})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SiteX-abc123.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `a=1&b=2`)

	var got aardvark.Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Parks", got.Title)
}

func TestWrite_Overwrites(t *testing.T) {
	w := NewWriter(t.TempDir())

	_, err := w.Write(aardvark.Record{ID: "SiteX-abc123", Title: "First"})
	require.NoError(t, err)
	path, err := w.Write(aardvark.Record{ID: "SiteX-abc123", Title: "Second"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Second")
	assert.NotContains(t, string(data), "First")

	entries, err := os.ReadDir(w.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_InvalidID(t *testing.T) {
	w := NewWriter(t.TempDir())
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		_, err := w.Write(aardvark.Record{ID: id})
		var writeErr *WriteError
		require.ErrorAs(t, err, &writeErr, id)
		assert.ErrorIs(t, err, ErrInvalidID)
	}
}

func TestWrite_UnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewWriter(file).Write(aardvark.Record{ID: "SiteX-abc123"})
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "SiteX-abc123", writeErr.ID)
}

// Package output persists accepted records as one JSON file per record id.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/aardvark-harvest/internal/aardvark"
)

// Writer writes {id}.json files into a directory. A later write for the same id replaces the
// earlier file.
type Writer struct {
	dir string
}

// NewWriter creates a Writer for dir. The directory is created on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir is the output directory.
func (w *Writer) Dir() string { return w.dir }

// PathFor returns the file a record with id is written to.
func (w *Writer) PathFor(id string) string {
	return filepath.Join(w.dir, id+".json")
}

// Write serializes rec and writes it, returning the file path.
func (w *Writer) Write(rec aardvark.Record) (string, error) {
	if rec.ID == "" || strings.ContainsAny(rec.ID, `/\`) || rec.ID == "." || rec.ID == ".." {
		return "", &WriteError{ID: rec.ID, Cause: ErrInvalidID}
	}

	data, err := Encode(rec)
	if err != nil {
		return "", &WriteError{ID: rec.ID, Cause: err}
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", &WriteError{ID: rec.ID, Path: w.dir, Cause: fmt.Errorf("failed to create output directory: %w", err)}
	}

	path := w.PathFor(rec.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &WriteError{ID: rec.ID, Path: path, Cause: err}
	}
	return path, nil
}

// Encode renders a record as indented JSON without HTML escaping, so reference URLs stay readable.
func Encode(rec aardvark.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return buf.Bytes(), nil
}

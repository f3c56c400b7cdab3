package spatial

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var tableColumns = []string{"name", "west", "east", "north", "south"}

// Table maps a region name to its default bounding box.
type Table map[string]BBox

// Lookup returns the named box, or nil when name is empty or unknown.
func (t Table) Lookup(name string) *BBox {
	if name == "" || t == nil {
		return nil
	}
	box, ok := t[name]
	if !ok {
		return nil
	}
	return &box
}

// LoadTable reads the default bbox CSV at path.
func LoadTable(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TableError{Path: path, Message: "cannot open", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return ReadTable(path, f)
}

// ReadTable parses a name,west,east,north,south CSV. The header row is required;
// extra columns are ignored.
func ReadTable(path string, r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &TableError{Path: path, Message: "missing header", Cause: err}
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))] = i
	}
	for _, col := range tableColumns {
		if _, ok := index[col]; !ok {
			return nil, &TableError{Path: path, Message: fmt.Sprintf("missing column %q", col)}
		}
	}

	table := Table{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, &TableError{Path: path, Line: line, Message: "malformed row", Cause: err}
		}

		values := make(map[string]float64, 4)
		for _, col := range tableColumns[1:] {
			i := index[col]
			if i >= len(record) {
				return nil, &TableError{Path: path, Line: line, Message: fmt.Sprintf("missing %s value", col)}
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				return nil, &TableError{Path: path, Line: line, Message: fmt.Sprintf("bad %s value", col), Cause: err}
			}
			values[col] = v
		}

		name := strings.TrimSpace(record[index["name"]])
		table[name] = BBox{
			West:  values["west"],
			East:  values["east"],
			North: values["north"],
			South: values["south"],
		}
	}
	return table, nil
}

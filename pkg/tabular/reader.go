// Package tabular reads expected-serial files (CSV and XLSX) into a
// header-indexed table.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/xuri/excelize/v2"
)

// MissingColumnError is returned when a requested column is not present in
// the file's header row
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found, available columns: %s", e.Column, strings.Join(e.Available, ", "))
}

// Table holds the parsed rows keyed by lowercased header name. Column lookup
// is case-insensitive; cell order within a column follows row order.
type Table struct {
	headers []string
	columns map[string][]string
}

// Read parses data into a Table based on the filename extension. CSV and XLSX
// are supported; for XLSX only the first sheet is read.
func Read(filename string, data []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx":
		return readXLSX(data)
	default:
		return nil, httperror.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("unsupported expected file type %q, use .csv or .xlsx", filepath.Ext(filename)))
	}
}

func readCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return fromRows(rows), nil
}

func readXLSX(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx sheet %q: %w", sheet, err)
	}
	return fromRows(rows), nil
}

func fromRows(rows [][]string) *Table {
	table := &Table{columns: make(map[string][]string)}
	if len(rows) == 0 {
		return table
	}

	table.headers = rows[0]
	for i, header := range table.headers {
		key := normalizeHeader(header)
		if key == "" {
			continue
		}
		column := make([]string, 0, len(rows)-1)
		for _, row := range rows[1:] {
			if i < len(row) {
				column = append(column, row[i])
			}
		}
		table.columns[key] = column
	}
	return table
}

// Headers returns the header row as it appeared in the file
func (t *Table) Headers() []string {
	return t.headers
}

// Column returns the cells under the named header, matched case-insensitively
func (t *Table) Column(name string) ([]string, error) {
	column, ok := t.columns[normalizeHeader(name)]
	if !ok {
		return nil, &MissingColumnError{Column: name, Available: t.headers}
	}
	return column, nil
}

// Columns concatenates the cells of the named columns in the order given
func (t *Table) Columns(names ...string) ([]string, error) {
	var out []string
	for _, name := range names {
		column, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out = append(out, column...)
	}
	return out, nil
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

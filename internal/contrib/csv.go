// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contrib reads and writes campaign-finance contribution CSV files
// in the shape produced by the California Secretary of State PowerSearch
// export. All columns are preserved; the only mutation this tool performs is
// adding or updating the "Contributor Category" column.
package contrib

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/civicdata/contribcat/pkg/types"
)

// Column names from the PowerSearch export contract.
const (
	ColName       = "Contributor Name"
	ColEmployer   = "Contributor Employer"
	ColOccupation = "Contributor Occupation"
	ColAmount     = "Amount"

	// ColCategory is appended by the pipeline.
	ColCategory = "Contributor Category"
)

// File is a parsed contribution CSV: a header row plus data rows, with every
// column preserved in its original order.
type File struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// ReadFile parses the CSV at path. It rejects files that do not exist, are
// not CSVs, have no header, or contain rows that look like the export's
// trailing footer/summary lines (those must be stripped before processing).
func ReadFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input file %s not found", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a CSV file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil, fmt.Errorf("%s is not a CSV file", path)
	}

	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are diagnosed below

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	header := records[0]
	f := &File{
		Path:   path,
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, col := range header {
		f.index[strings.TrimSpace(col)] = i
	}

	for i, rec := range records[1:] {
		if IsFooterRow(rec, len(header)) {
			return nil, fmt.Errorf(
				"row %d of %s looks like an export footer/summary line; remove trailing footer rows before processing",
				i+2, path)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("row %d of %s has %d fields, expected %d",
				i+2, path, len(rec), len(header))
		}
		f.Rows = append(f.Rows, rec)
	}

	return f, nil
}

// footerLeaders are cell prefixes that identify PowerSearch footer/summary
// lines appended below the data rows.
var footerLeaders = []string{"total", "subtotal", "grand total", "count:", "rows:", "record count"}

// IsFooterRow reports whether rec looks like a trailing footer/summary line
// rather than a data row. Footers are shorter than the header or lead with a
// summary label, and carry at most one populated cell.
func IsFooterRow(rec []string, width int) bool {
	if len(rec) == 0 {
		return true
	}
	blank := 0
	for _, c := range rec {
		if strings.TrimSpace(c) == "" {
			blank++
		}
	}
	// At most one populated cell, the shape a summary line has.
	sparse := blank >= len(rec)-1

	first := strings.ToLower(strings.TrimSpace(rec[0]))
	for _, leader := range footerLeaders {
		if !strings.HasPrefix(first, leader) {
			continue
		}
		// A full-width row with real values past the first cell is data,
		// not a footer: "Total Energies SE" is a contributor.
		return len(rec) < width || sparse
	}
	return len(rec) < width && sparse
}

// Column returns the index of the named column.
func (f *File) Column(name string) (int, bool) {
	i, ok := f.index[name]
	return i, ok
}

// Value returns the trimmed cell value at row i for the named column, or ""
// when the column is absent.
func (f *File) Value(i int, col string) string {
	idx, ok := f.index[col]
	if !ok {
		return ""
	}
	return strings.TrimSpace(f.Rows[i][idx])
}

// Contributor returns the identity fields for row i.
func (f *File) Contributor(i int) types.Contributor {
	return types.Contributor{
		Name:       f.Value(i, ColName),
		Employer:   f.Value(i, ColEmployer),
		Occupation: f.Value(i, ColOccupation),
	}
}

// EnsureCategoryColumn adds the category column if it is not present and
// returns its index.
func (f *File) EnsureCategoryColumn() int {
	if idx, ok := f.index[ColCategory]; ok {
		return idx
	}
	idx := len(f.Header)
	f.Header = append(f.Header, ColCategory)
	f.index[ColCategory] = idx
	for i := range f.Rows {
		f.Rows[i] = append(f.Rows[i], "")
	}
	return idx
}

// SetCategory writes the category for row i, adding the column if needed.
func (f *File) SetCategory(i int, category string) {
	idx := f.EnsureCategoryColumn()
	f.Rows[i][idx] = category
}

// Categories returns the category column values, one per row. Rows without a
// category yield "".
func (f *File) Categories() []string {
	out := make([]string, len(f.Rows))
	for i := range f.Rows {
		out[i] = f.Value(i, ColCategory)
	}
	return out
}

// Amount parses the Amount cell for row i. Currency symbols and thousands
// separators are tolerated. ok is false when the column is absent or the
// cell does not parse.
func (f *File) Amount(i int) (decimal.Decimal, bool) {
	raw := f.Value(i, ColAmount)
	if raw == "" {
		return decimal.Decimal{}, false
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// WriteFile writes f to path as CSV, creating parent directories as needed.
func WriteFile(path string, f *File) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	cw := csv.NewWriter(out)
	if err := cw.Write(f.Header); err != nil {
		return fmt.Errorf("writing header to %s: %w", path, err)
	}
	if err := cw.WriteAll(f.Rows); err != nil {
		return fmt.Errorf("writing rows to %s: %w", path, err)
	}
	cw.Flush()
	return cw.Error()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contrib

import (
	"fmt"
	"strings"
)

// Validate checks the documented input contract: the file must have the
// required columns, at least one data row, and each required column must hold
// data somewhere. With no arguments, only Contributor Name is required; the
// employer and occupation columns improve categorization but exports without
// them still process.
func Validate(f *File, required ...string) error {
	if len(required) == 0 {
		required = []string{ColName}
	}

	var missing []string
	for _, col := range required {
		if _, ok := f.Column(col); !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing required columns: %s", f.Path, strings.Join(missing, ", "))
	}

	if len(f.Rows) == 0 {
		return fmt.Errorf("%s has no data rows", f.Path)
	}

	// Only the name column must hold data; exports legitimately leave
	// employer and occupation blank for many rows.
	if columnEmpty(f, ColName) {
		return fmt.Errorf("%s: required column %q contains no data", f.Path, ColName)
	}

	return nil
}

// ValidateCategorized checks that f carries a populated category column, the
// precondition for standardize-only runs.
func ValidateCategorized(f *File) error {
	if _, ok := f.Column(ColCategory); !ok {
		return fmt.Errorf("%s: missing %q column", f.Path, ColCategory)
	}
	if len(f.Rows) == 0 {
		return fmt.Errorf("%s has no data rows", f.Path)
	}
	if columnEmpty(f, ColCategory) {
		return fmt.Errorf("%s: column %q contains no data", f.Path, ColCategory)
	}
	return nil
}

func columnEmpty(f *File, col string) bool {
	for i := range f.Rows {
		if f.Value(i, col) != "" {
			return false
		}
	}
	return true
}

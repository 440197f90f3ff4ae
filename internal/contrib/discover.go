// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contrib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindDefaultInput returns the first CSV file (by name) in dir. This backs
// the convention that a raw export dropped into data/raw/ is picked up
// without naming it on the command line.
func FindDefaultInput(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no input file specified and %s does not exist", dir)
		}
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	var csvs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			csvs = append(csvs, entry.Name())
		}
	}
	if len(csvs) == 0 {
		return "", fmt.Errorf("no input file specified and no CSV files found in %s", dir)
	}

	sort.Strings(csvs)
	return filepath.Join(dir, csvs[0]), nil
}

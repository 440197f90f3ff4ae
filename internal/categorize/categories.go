// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/civicdata/contribcat/pkg/types"
)

// DefaultCategories is the canonical category set for California
// campaign-finance contributors. Standardization maps raw model output onto
// this list; anything below the similarity threshold becomes Other.
var DefaultCategories = []string{
	"Democratic Party Committees",
	"Other political action committees",
	"State Legislative Candidates/Officeholders",
	"Local Government Candidates/Officeholders",
	"Labor Unions",
	"Environmental Groups",
	"Oil Industry",
	"Pharmaceutical Industry",
	"Real Estate Industry",
	"Indian Tribes",
	"Lobbyists and Political Consultants",
	"Lawyers",
	"Individual contributor (with no other information)",
	"Business contributor (with no other information)",
	types.CategoryOther,
}

// categoryFile is the YAML shape for a custom category set.
type categoryFile struct {
	Categories []string `yaml:"categories"`
}

// LoadCategories reads a custom category set from a YAML file with a
// top-level "categories" list. Other is appended if the file omits it, since
// the pipeline needs a fallback category.
func LoadCategories(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var cf categoryFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing categories file %s: %w", path, err)
	}
	if len(cf.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s contains no categories", path)
	}

	hasOther := false
	for _, c := range cf.Categories {
		if c == types.CategoryOther {
			hasOther = true
			break
		}
	}
	if !hasOther {
		cf.Categories = append(cf.Categories, types.CategoryOther)
	}

	return cf.Categories, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures and configuration for the
// contributor categorization pipeline.
package types

// Contributor holds the three identity fields used to categorize a
// contribution row. Empty strings mean the export left the field blank.
type Contributor struct {
	Name       string `json:"name" yaml:"name"`
	Employer   string `json:"employer,omitempty" yaml:"employer,omitempty"`
	Occupation string `json:"occupation,omitempty" yaml:"occupation,omitempty"`
}

// CategoryOther is the catch-all category assigned when no canonical
// category applies or a row cannot be categorized.
const CategoryOther = "Other"

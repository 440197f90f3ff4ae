// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/civicdata/contribcat/internal/contrib"
)

// Distribution is a per-category breakdown of a categorized file: row counts,
// and contribution totals when the export carries an Amount column.
type Distribution struct {
	Counts     map[string]int
	Totals     map[string]decimal.Decimal
	HasAmounts bool
}

// Stats tallies the category distribution of f.
func Stats(f *contrib.File) Distribution {
	d := Distribution{
		Counts: make(map[string]int),
		Totals: make(map[string]decimal.Decimal),
	}

	for i := range f.Rows {
		category := f.Value(i, contrib.ColCategory)
		d.Counts[category]++
		if amt, ok := f.Amount(i); ok {
			d.Totals[category] = d.Totals[category].Add(amt)
			d.HasAmounts = true
		}
	}

	return d
}

// Write prints the distribution to w, largest category first.
func (d Distribution) Write(w io.Writer, title string) {
	categories := make([]string, 0, len(d.Counts))
	for c := range d.Counts {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		if d.Counts[categories[i]] != d.Counts[categories[j]] {
			return d.Counts[categories[i]] > d.Counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	fmt.Fprintf(w, "%s distribution:\n", title)
	for _, c := range categories {
		if d.HasAmounts {
			fmt.Fprintf(w, "  %s: %d ($%s)\n", c, d.Counts[c], d.Totals[c].StringFixed(2))
		} else {
			fmt.Fprintf(w, "  %s: %d\n", c, d.Counts[c])
		}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"strings"

	"github.com/agext/levenshtein"

	"github.com/civicdata/contribcat/pkg/types"
)

// defaultFuzzyThreshold is the minimum similarity ratio (0-100) for a raw
// category to be mapped onto a canonical one.
const defaultFuzzyThreshold = 80

var levParams = levenshtein.NewParams()

// Standardize maps a raw model-produced category onto the canonical set.
// Exact matches pass through; otherwise the closest canonical category by
// Levenshtein similarity wins if it clears the threshold, and everything else
// becomes Other. Canonical input is therefore a fixed point.
func Standardize(category string, canonical []string, threshold int) string {
	if threshold <= 0 {
		threshold = defaultFuzzyThreshold
	}

	category = strings.TrimSpace(category)
	if category == "" {
		return types.CategoryOther
	}

	for _, c := range canonical {
		if category == c {
			return c
		}
	}

	best := types.CategoryOther
	bestScore := -1
	for _, c := range canonical {
		score := ratio(category, c)
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore >= threshold {
		return best
	}
	return types.CategoryOther
}

// ratio is a 0-100 Levenshtein similarity score over case-folded input.
func ratio(a, b string) int {
	sim := levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), levParams)
	return int(sim*100 + 0.5)
}

// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"github.com/agext/levenshtein"
)

// nameSuggestion picks the closest of the given function names if it is
// within a small edit distance of what the caller typed, or returns an
// empty string if nothing is close enough to be a likely typo.
func nameSuggestion(given string, names []string) string {
	best := ""
	bestDist := 4 // threshold; anything further is probably not a typo
	for _, name := range names {
		if dist := levenshtein.Distance(given, name, nil); dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

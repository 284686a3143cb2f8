package similarity

import (
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/agnivade/levenshtein"
)

// smithWaterman is a reusable local-alignment metric instance. Local
// alignment handles one string being a truncated or contained version of
// the other, which plain edit distance penalizes heavily.
var smithWaterman = metrics.NewSmithWatermanGotoh()

// Score returns the similarity between two normalized strings in [0, 100].
// It is the maximum of the whole-string edit ratio, the best-aligned
// substring ratio, the token-sort ratio, and the token-set ratio. Either
// side being empty scores 0.
func Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}

	best := editRatio(a, b)
	if v := alignedRatio(a, b); v > best {
		best = v
	}
	if v := tokenSortRatio(a, b); v > best {
		best = v
	}
	if v := tokenSetRatio(a, b); v > best {
		best = v
	}

	if best > 100 {
		best = 100
	}
	if best < 0 {
		best = 0
	}
	return best
}

// editRatio maps Levenshtein distance onto a 0-100 similarity.
func editRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 100 * (1 - float64(dist)/float64(longest))
}

func alignedRatio(a, b string) float64 {
	return 100 * strutil.Similarity(a, b, smithWaterman)
}

// tokenSortRatio compares the strings with their tokens sorted
// alphabetically, making the score insensitive to word order.
func tokenSortRatio(a, b string) float64 {
	return editRatio(sortedTokens(a), sortedTokens(b))
}

// tokenSetRatio compares the shared token set against each side's full
// token set, making the score insensitive to both word order and
// duplicated or extra words on one side.
func tokenSetRatio(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	var shared, onlyA, onlyB []string
	for token := range setA {
		if _, ok := setB[token]; ok {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if _, ok := setA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(shared, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := editRatio(base, withA)
	if v := editRatio(base, withB); v > best {
		best = v
	}
	if v := editRatio(withA, withB); v > best {
		best = v
	}
	return best
}

func sortedTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

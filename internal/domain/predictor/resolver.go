package predictor

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/fightcast/pkg/metrics"
)

// minFuzzyQueryLen keeps one- or two-letter queries from matching half the roster.
const minFuzzyQueryLen = 3

// A fuzzy candidate is accepted only when its edit distance from the query is
// at most half the candidate's length, so a bare first name does not match.
const maxFuzzyDistanceRatio = 0.5

// resolver maps user-typed names to roster indices.
type resolver struct {
	exact   map[string]int
	aliases map[string]int
	keys    []string // lowercase names and aliases, parallel to owners
	owners  []int
	fuzzy   bool
}

func newResolver(fighters []Fighter, fuzzyEnabled bool) *resolver {
	r := &resolver{
		exact:   make(map[string]int, len(fighters)),
		aliases: make(map[string]int),
		fuzzy:   fuzzyEnabled,
	}
	for i, f := range fighters {
		key := normalizeName(f.Name)
		r.exact[key] = i
		r.keys = append(r.keys, key)
		r.owners = append(r.owners, i)
		for _, a := range f.Aliases {
			ak := normalizeName(a)
			if ak == "" {
				continue
			}
			if _, taken := r.exact[ak]; taken {
				continue
			}
			if _, taken := r.aliases[ak]; taken {
				continue
			}
			r.aliases[ak] = i
			r.keys = append(r.keys, ak)
			r.owners = append(r.owners, i)
		}
	}
	return r
}

// resolve returns the roster index for name and the method that found it.
// Ties between different fighters at the best fuzzy rank are a miss.
func (r *resolver) resolve(name string) (int, string, bool) {
	key := normalizeName(name)
	if key == "" {
		return -1, metrics.MethodMiss, false
	}
	if i, ok := r.exact[key]; ok {
		return i, metrics.MethodExact, true
	}
	if i, ok := r.aliases[key]; ok {
		return i, metrics.MethodAlias, true
	}
	if !r.fuzzy || len([]rune(key)) < minFuzzyQueryLen {
		return -1, metrics.MethodMiss, false
	}

	ranks := r.closeEnough(fuzzy.RankFindNormalizedFold(key, r.keys))
	if len(ranks) == 0 {
		return -1, metrics.MethodMiss, false
	}
	sort.Sort(ranks)
	best := ranks[0]
	owner := r.owners[best.OriginalIndex]
	for _, rk := range ranks[1:] {
		if rk.Distance != best.Distance {
			break
		}
		if r.owners[rk.OriginalIndex] != owner {
			return -1, metrics.MethodMiss, false
		}
	}
	return owner, metrics.MethodFuzzy, true
}

// closeEnough drops candidates too far from the query to be the same name.
func (r *resolver) closeEnough(ranks fuzzy.Ranks) fuzzy.Ranks {
	kept := ranks[:0]
	for _, rk := range ranks {
		limit := maxFuzzyDistanceRatio * float64(utf8.RuneCountInString(r.keys[rk.OriginalIndex]))
		if float64(rk.Distance) <= limit {
			kept = append(kept, rk)
		}
	}
	return kept
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

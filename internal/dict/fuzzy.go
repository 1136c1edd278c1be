package dict

import "strings"

// MaxDistance is the largest edit distance a fuzzy match may have.
const MaxDistance = 2

// fuzzy returns the term whose key is nearest to key. Keys are compared
// lower-cased. Ties go to the entry seen first: built-in tokens in
// declaration order, then supplemental entries in file order.
func (s *Store) fuzzy(key string, sup *Supplement) (string, bool) {
	key = strings.ToLower(key)
	best, bestDist := "", MaxDistance+1

	consider := func(k, v string) {
		d := Distance(key, strings.ToLower(k))
		if d < bestDist {
			best, bestDist = v, d
		}
	}
	for _, t := range s.tokens {
		consider(t.Key, t.Term)
	}
	for _, e := range sup.Entries() {
		consider(e.Key, e.Value)
	}

	if bestDist > MaxDistance {
		return "", false
	}
	return best, true
}

// Distance is the Levenshtein distance between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

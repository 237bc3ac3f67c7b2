package terms

// Set is a term list indexed for membership tests. Duplicates collapse.
type Set struct {
	index map[string]struct{}
}

func NewSet(tokens []string) Set {
	index := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		index[tok] = struct{}{}
	}
	return Set{index: index}
}

func (s Set) Contains(token string) bool {
	_, ok := s.index[token]
	return ok
}

func (s Set) Len() int {
	return len(s.index)
}

// Filter returns the tokens that are members of s, keeping order and duplicates.
func (s Set) Filter(tokens []string) []string {
	out := make([]string, 0)
	for _, tok := range tokens {
		if s.Contains(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// FilterMembers is Filter for a reference that has not been indexed yet.
// Callers scoring many chapters should build a Set once instead.
func FilterMembers(tokens, reference []string) []string {
	return NewSet(reference).Filter(tokens)
}

// CountOccurrences maps each token to the number of times it appears.
func CountOccurrences(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}
	return counts
}

// Package density scores how much of a chapter is made of matched terms.
//
// The score is a plain occurrence ratio: matched term occurrences divided by
// the chapter's token count. Positions of the terms play no part.
package density

// Total sums every count in counts.
func Total(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// Density returns Total(matched) / len(chapter), or 0 for an empty chapter.
func Density(chapter []string, matched map[string]int) float64 {
	if len(chapter) == 0 {
		return 0
	}
	return float64(Total(matched)) / float64(len(chapter))
}

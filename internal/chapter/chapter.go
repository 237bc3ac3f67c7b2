package chapter

// Sentinel marks the first token of every chapter after the first.
const Sentinel = "CHAPTER"

// Segment is one chapter: the tokens of book[StartToken:EndToken].
type Segment struct {
	Index      int
	StartToken int
	EndToken   int
	Tokens     []string
}

func (s Segment) Len() int {
	return s.EndToken - s.StartToken
}

// Split cuts the book's token stream at each Sentinel. A sentinel closes the
// chapter accumulated so far only when that chapter has at least one token,
// and the sentinel itself opens the next chapter. Trailing tokens always form
// a final chapter. Segments share the backing array of book.
func Split(book []string) []Segment {
	if len(book) == 0 {
		return nil
	}

	segments := make([]Segment, 0, 64)
	start := 0
	emit := func(end int) {
		segments = append(segments, Segment{
			Index:      len(segments),
			StartToken: start,
			EndToken:   end,
			Tokens:     book[start:end:end],
		})
		start = end
	}

	for i, tok := range book {
		if tok == Sentinel && i > start {
			emit(i)
		}
	}
	if start < len(book) {
		emit(len(book))
	}
	return segments
}

// Groups returns just the token lists of segments, in order.
func Groups(segments []Segment) [][]string {
	out := make([][]string, len(segments))
	for i, s := range segments {
		out[i] = s.Tokens
	}
	return out
}

package tokenize

import "strings"

// IsDelimiter reports whether r separates tokens.
func IsDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', ',', ':', ';', '.', '!', '?', '\'', '"':
		return true
	}
	return false
}

// Tokenize splits text on the delimiter set. Runs of delimiters never
// produce empty tokens.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, IsDelimiter)
	if len(fields) == 0 {
		return []string{}
	}
	return fields
}

// TokenizeLines tokenizes every line and concatenates the results in order.
func TokenizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, Tokenize(line)...)
	}
	return out
}

package tokenize

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "basic", input: "Hello, World! How   are you today?", want: []string{"Hello", "World", "How", "are", "you", "today"}},
		{name: "empty", input: "", want: []string{}},
		{name: "only delimiters", input: " ,.;:!?'\"\t\r\n  ", want: []string{}},
		{name: "mixed delimiters", input: "One, two; three: four. Five! Six? Seven", want: []string{"One", "two", "three", "four", "Five", "Six", "Seven"}},
		{name: "quotes split words", input: `don't "stop"`, want: []string{"don", "t", "stop"}},
		{name: "case kept", input: "CHAPTER chapter", want: []string{"CHAPTER", "chapter"}},
		{name: "hyphen is not a delimiter", input: "well-known", want: []string{"well-known"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if !slices.Equal(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tc.input, got, tc.want)
			}
			for _, tok := range got {
				if tok == "" {
					t.Fatalf("empty token in %q", got)
				}
			}
		})
	}
}

func TestTokenizeLines(t *testing.T) {
	got := TokenizeLines([]string{"Hello, World!", "How    are you today?"})
	want := []string{"Hello", "World", "How", "are", "you", "today"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	got = TokenizeLines([]string{"One, two; three", "four. Five! Six?"})
	want = []string{"One", "two", "three", "four", "Five", "Six"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := TokenizeLines(nil); len(got) != 0 {
		t.Fatalf("expected no tokens for no lines, got %q", got)
	}
	if got := TokenizeLines([]string{"", "  ", "..."}); len(got) != 0 {
		t.Fatalf("expected no tokens for blank lines, got %q", got)
	}
}

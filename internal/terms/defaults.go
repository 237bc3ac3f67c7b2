package terms

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed war_terms.json
var warTermsJSON []byte

//go:embed peace_terms.json
var peaceTermsJSON []byte

type Kind string

const (
	War   Kind = "war"
	Peace Kind = "peace"
)

// Default returns the built-in term list for kind.
func Default(kind Kind) ([]string, error) {
	var raw []byte
	switch kind {
	case War:
		raw = warTermsJSON
	case Peace:
		raw = peaceTermsJSON
	default:
		return nil, fmt.Errorf("unknown term kind: %q", kind)
	}
	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("decode %s terms: %w", kind, err)
	}
	return words, nil
}

package classify

import (
	"errors"
	"fmt"
)

// Label is the category assigned to one chapter.
type Label string

const (
	WarRelated   Label = "war-related"
	PeaceRelated Label = "peace-related"
)

// ErrLengthMismatch is returned when the war and peace sequences differ in length.
var ErrLengthMismatch = errors.New("density sequences differ in length")

// LabelFor picks war-related only when war strictly exceeds peace.
func LabelFor(war, peace float64) Label {
	if war > peace {
		return WarRelated
	}
	return PeaceRelated
}

// Classify labels each chapter from its war and peace densities.
func Classify(war, peace []float64) ([]Label, error) {
	if len(war) != len(peace) {
		return nil, fmt.Errorf("%w: war=%d peace=%d", ErrLengthMismatch, len(war), len(peace))
	}
	out := make([]Label, len(war))
	for i := range war {
		out[i] = LabelFor(war[i], peace[i])
	}
	return out, nil
}

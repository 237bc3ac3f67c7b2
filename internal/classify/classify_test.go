package classify

import (
	"errors"
	"slices"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		war   []float64
		peace []float64
		want  []Label
	}{
		{
			name:  "mixed",
			war:   []float64{0.8, 0.5, 0.6, 0.9},
			peace: []float64{0.3, 0.7, 0.5, 0.2},
			want:  []Label{WarRelated, PeaceRelated, WarRelated, WarRelated},
		},
		{name: "empty", war: nil, peace: nil, want: []Label{}},
		{
			name:  "ties go to peace",
			war:   []float64{0.5, 0.6, 0.7},
			peace: []float64{0.5, 0.6, 0.7},
			want:  []Label{PeaceRelated, PeaceRelated, PeaceRelated},
		},
		{name: "zero densities", war: []float64{0}, peace: []float64{0}, want: []Label{PeaceRelated}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.war, tc.peace)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if !slices.Equal(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClassifyLengthMismatch(t *testing.T) {
	got, err := Classify([]float64{0.1, 0.2}, []float64{0.1})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected no labels on mismatch, got %v", got)
	}
}

func TestLabelStrings(t *testing.T) {
	if string(WarRelated) != "war-related" || string(PeaceRelated) != "peace-related" {
		t.Fatalf("unexpected label text: %q %q", WarRelated, PeaceRelated)
	}
}

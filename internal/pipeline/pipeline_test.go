package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"warpeace/internal/chapter"
	"warpeace/internal/classify"
	"warpeace/internal/terms"
	"warpeace/internal/tokenize"
)

func TestAnalyzeSegments(t *testing.T) {
	segs := []chapter.Segment{
		{Index: 0, Tokens: []string{"a"}},
		{Index: 1, Tokens: []string{"b"}},
		{Index: 2, Tokens: []string{"c"}},
	}

	var called int32
	errs := AnalyzeSegments(segs, 2, func(seg chapter.Segment) error {
		atomic.AddInt32(&called, 1)
		if seg.Index == 1 {
			return errors.New("test error")
		}
		return nil
	})

	if called != int32(len(segs)) {
		t.Fatalf("expected %d calls, got %d", len(segs), called)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
}

func TestProcessChapter(t *testing.T) {
	war := terms.NewSet([]string{"apple", "banana"})
	peace := terms.NewSet([]string{"orange", "grape"})

	var d Densities
	d.ProcessChapter([]string{"apple", "banana", "orange", "apple", "grape", "banana"}, war, peace)
	if len(d.War) != 1 || len(d.Peace) != 1 {
		t.Fatalf("expected one density per list, got %+v", d)
	}
	if d.War[0] != 4.0/6 || d.Peace[0] != 2.0/6 {
		t.Fatalf("unexpected densities: war=%v peace=%v", d.War[0], d.Peace[0])
	}

	d = Densities{}
	d.ProcessChapter(nil, war, peace)
	if len(d.War) != 1 || d.War[0] != 0 || d.Peace[0] != 0 {
		t.Fatalf("empty chapter should score zero, got %+v", d)
	}
}

func TestRunBasicBook(t *testing.T) {
	book := []string{"apple", "banana", "CHAPTER", "orange", "apple", "grape", "banana", "CHAPTER", "kiwi"}
	war := terms.NewSet([]string{"apple", "banana"})
	peace := terms.NewSet([]string{"orange", "grape"})

	for _, workers := range []int{1, 2, 0} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			res, err := Run(book, war, peace, workers)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(res.Chapters) != 3 {
				t.Fatalf("expected 3 chapters, got %d", len(res.Chapters))
			}
			wantWar := []float64{2.0 / 2, 2.0 / 5, 0.0 / 1}
			wantPeace := []float64{0.0 / 2, 2.0 / 5, 0.0 / 1}
			if !slices.Equal(res.Densities.War, wantWar) {
				t.Fatalf("war densities = %v, want %v", res.Densities.War, wantWar)
			}
			if !slices.Equal(res.Densities.Peace, wantPeace) {
				t.Fatalf("peace densities = %v, want %v", res.Densities.Peace, wantPeace)
			}
			wantLabels := []classify.Label{classify.WarRelated, classify.PeaceRelated, classify.PeaceRelated}
			if !slices.Equal(res.Labels, wantLabels) {
				t.Fatalf("labels = %v, want %v", res.Labels, wantLabels)
			}
		})
	}
}

func TestRunEmptyInputs(t *testing.T) {
	res, err := Run(nil, terms.NewSet([]string{"apple"}), terms.NewSet(nil), 4)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Chapters) != 0 || len(res.Densities.War) != 0 || len(res.Densities.Peace) != 0 || len(res.Labels) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}

	res, err = Run([]string{"war", "CHAPTER", "peace"}, terms.NewSet(nil), terms.NewSet(nil), 1)
	if err != nil {
		t.Fatalf("run with empty term lists: %v", err)
	}
	for i, l := range res.Labels {
		if l != classify.PeaceRelated {
			t.Fatalf("chapter %d: empty lists must tie to peace-related, got %s", i+1, l)
		}
	}
}

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, "CHAPTER %d\n", i+1)
		if i%3 == 0 {
			b.WriteString("The army attacked at dawn, and the soldier fell.\n")
		} else {
			b.WriteString("They had tea in the garden; the family was happy.\n")
		}
	}
	book := tokenize.Tokenize(b.String())
	war := terms.NewSet([]string{"army", "attacked", "soldier"})
	peace := terms.NewSet([]string{"tea", "garden", "family", "happy"})

	serial, err := Run(book, war, peace, 1)
	if err != nil {
		t.Fatalf("serial run: %v", err)
	}
	for i := 0; i < 5; i++ {
		parallel, err := Run(book, war, peace, 8)
		if err != nil {
			t.Fatalf("parallel run: %v", err)
		}
		if !slices.Equal(serial.Labels, parallel.Labels) ||
			!slices.Equal(serial.Densities.War, parallel.Densities.War) ||
			!slices.Equal(serial.Densities.Peace, parallel.Densities.Peace) {
			t.Fatal("parallel run diverged from serial run")
		}
	}

	if len(serial.Labels) != 200 {
		t.Fatalf("expected 200 chapters, got %d", len(serial.Labels))
	}
	for i, d := range serial.Densities.War {
		if d < 0 || d > 1 || serial.Densities.Peace[i] < 0 || serial.Densities.Peace[i] > 1 {
			t.Fatalf("chapter %d density out of range: war=%v peace=%v", i+1, d, serial.Densities.Peace[i])
		}
		want := classify.PeaceRelated
		if i%3 == 0 {
			want = classify.WarRelated
		}
		if serial.Labels[i] != want {
			t.Fatalf("chapter %d: got %s, want %s", i+1, serial.Labels[i], want)
		}
	}
}

package pipeline

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"warpeace/internal/chapter"
	"warpeace/internal/classify"
	"warpeace/internal/density"
	"warpeace/internal/terms"
)

type Analyzer func(seg chapter.Segment) error

// AnalyzeSegments runs fn over segments on a fixed pool of workers.
func AnalyzeSegments(segments []chapter.Segment, workers int, fn Analyzer) []error {
	if len(segments) == 0 || fn == nil {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers < 1 {
			workers = 1
		}
	}
	if workers > len(segments) {
		workers = len(segments)
	}

	jobs := make(chan chapter.Segment)
	errs := make(chan error, len(segments))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seg := range jobs {
				if err := fn(seg); err != nil {
					errs <- err
				}
			}
		}()
	}

	for _, seg := range segments {
		jobs <- seg
	}
	close(jobs)
	wg.Wait()
	close(errs)

	out := make([]error, 0, len(errs))
	for err := range errs {
		out = append(out, err)
	}
	return out
}

// Densities holds one war and one peace density per chapter, in chapter order.
type Densities struct {
	War   []float64
	Peace []float64
}

// Score is the density of set's members within chapter.
func Score(chapterTokens []string, set terms.Set) float64 {
	return density.Density(chapterTokens, terms.CountOccurrences(set.Filter(chapterTokens)))
}

// ProcessChapter scores one chapter against both lists and appends the results.
func (d *Densities) ProcessChapter(chapterTokens []string, war, peace terms.Set) {
	d.War = append(d.War, Score(chapterTokens, war))
	d.Peace = append(d.Peace, Score(chapterTokens, peace))
}

// ProcessChapters scores every segment. With more than one worker the
// chapters are scored concurrently; each result lands at its chapter's index.
func ProcessChapters(segments []chapter.Segment, war, peace terms.Set, workers int) (Densities, error) {
	if workers == 1 {
		var d Densities
		for _, seg := range segments {
			d.ProcessChapter(seg.Tokens, war, peace)
		}
		return d, nil
	}

	d := Densities{
		War:   make([]float64, len(segments)),
		Peace: make([]float64, len(segments)),
	}
	errs := AnalyzeSegments(segments, workers, func(seg chapter.Segment) error {
		if seg.Index < 0 || seg.Index >= len(segments) {
			return fmt.Errorf("segment index %d out of range", seg.Index)
		}
		d.War[seg.Index] = Score(seg.Tokens, war)
		d.Peace[seg.Index] = Score(seg.Tokens, peace)
		return nil
	})
	if len(errs) > 0 {
		return Densities{}, fmt.Errorf("score chapters: %w", errors.Join(errs...))
	}
	return d, nil
}

type Result struct {
	Chapters  []chapter.Segment
	Densities Densities
	Labels    []classify.Label
}

// Run segments the book, scores each chapter and labels it.
func Run(book []string, war, peace terms.Set, workers int) (Result, error) {
	segments := chapter.Split(book)
	d, err := ProcessChapters(segments, war, peace, workers)
	if err != nil {
		return Result{}, err
	}
	labels, err := classify.Classify(d.War, d.Peace)
	if err != nil {
		return Result{}, fmt.Errorf("classify chapters: %w", err)
	}
	return Result{Chapters: segments, Densities: d, Labels: labels}, nil
}

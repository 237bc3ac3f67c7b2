package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"warpeace/internal/classify"
	"warpeace/internal/density"
	"warpeace/internal/pipeline"
	"warpeace/internal/terms"
)

type ChapterResult struct {
	Chapter      int            `json:"chapter"`
	Tokens       int            `json:"tokens"`
	WarHits      int            `json:"war_hits"`
	PeaceHits    int            `json:"peace_hits"`
	WarDensity   float64        `json:"war_density"`
	PeaceDensity float64        `json:"peace_density"`
	Label        classify.Label `json:"label"`
}

type Report struct {
	BookTitle     string          `json:"book_title"`
	SourcePath    string          `json:"source_path"`
	TokenCount    int             `json:"token_count"`
	ChapterCount  int             `json:"chapter_count"`
	WarChapters   int             `json:"war_chapters"`
	PeaceChapters int             `json:"peace_chapters"`
	DurationMs    int64           `json:"duration_ms"`
	Chapters      []ChapterResult `json:"chapters"`
}

// Build summarizes a pipeline result. Hit counts are recomputed from the
// chapter tokens so the report can be checked against the densities.
func Build(title, source string, tokenCount int, res pipeline.Result, war, peace terms.Set) Report {
	r := Report{
		BookTitle:    title,
		SourcePath:   source,
		TokenCount:   tokenCount,
		ChapterCount: len(res.Chapters),
		Chapters:     make([]ChapterResult, 0, len(res.Chapters)),
	}
	for i, seg := range res.Chapters {
		label := res.Labels[i]
		if label == classify.WarRelated {
			r.WarChapters++
		} else {
			r.PeaceChapters++
		}
		r.Chapters = append(r.Chapters, ChapterResult{
			Chapter:      i + 1,
			Tokens:       len(seg.Tokens),
			WarHits:      density.Total(terms.CountOccurrences(war.Filter(seg.Tokens))),
			PeaceHits:    density.Total(terms.CountOccurrences(peace.Filter(seg.Tokens))),
			WarDensity:   res.Densities.War[i],
			PeaceDensity: res.Densities.Peace[i],
			Label:        label,
		})
	}
	return r
}

func Save(path string, r Report) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := writeAtomic(path, func(w *bufio.Writer) error {
		_, err := w.Write(raw)
		return err
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteClassifications writes one "Chapter <n>: <label>" line per chapter.
func WriteClassifications(path string, labels []classify.Label) error {
	err := writeAtomic(path, func(w *bufio.Writer) error {
		for i, l := range labels {
			if _, err := fmt.Fprintf(w, "Chapter %d: %s\n", i+1, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write classifications: %w", err)
	}
	return nil
}

// writeAtomic fills a temp file next to path and renames it into place, so
// readers never see a partial file.
func writeAtomic(path string, fill func(w *bufio.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

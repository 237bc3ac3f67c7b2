package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"warpeace/internal/config"
	"warpeace/internal/db"
	"warpeace/internal/ingest"
	"warpeace/internal/pipeline"
	"warpeace/internal/report"
	"warpeace/internal/terms"
	"warpeace/internal/tokenize"
	"warpeace/internal/workspace"
)

var classifyFlags = map[string]string{
	"book":        "input.book",
	"war-terms":   "input.war_terms",
	"peace-terms": "input.peace_terms",
	"out":         "output.path",
	"report":      "output.report",
	"workers":     "pipeline.workers",
	"store":       "store.enabled",
	"db":          "store.path",
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify each chapter of one book",
	Long: `Classify reads the book and both term lists, scores every chapter and writes
one "Chapter <n>: <label>" line per chapter to the output file.

Nothing is written unless all three inputs can be read.

Example:
  warpeace classify --book files/war_and_peace.txt \
    --war-terms files/war_terms.txt --peace-terms files/peace_terms.txt \
    --out files/output/chapterCategorizations.txt`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, classifyFlags)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rep, err := classifyBook(cfg, terms.NewLoader(0), nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chapter categorizations saved to '%s' (%d war-related, %d peace-related)\n",
			cfg.Output.Path, rep.WarChapters, rep.PeaceChapters)
		return nil
	},
}

func init() {
	d := config.Default()
	f := classifyCmd.Flags()
	f.String("book", d.Input.Book, "book to classify (.txt, .docx or .pdf)")
	f.String("war-terms", "", "war term list, one or more terms per line (default: built-in list)")
	f.String("peace-terms", "", "peace term list (default: built-in list)")
	f.String("out", d.Output.Path, "classification output path")
	f.String("report", "", "JSON report path (default: in the workspace project dir)")
	f.Int("workers", 0, "chapters scored in parallel (0 = one per CPU)")
	f.Bool("store", false, "record the run in the sqlite store")
	f.String("db", "", "sqlite store path (default: <workspace>/runs.db)")

	rootCmd.AddCommand(classifyCmd)
}

// inputs are the three pipeline inputs, all loaded before any scoring.
type inputs struct {
	book  *ingest.Parsed
	war   terms.Set
	peace terms.Set
}

func loadInputs(in config.InputConfig, loader *terms.Loader) (inputs, error) {
	book, err := ingest.ParseFile(in.Book)
	if err != nil {
		return inputs{}, fmt.Errorf("load book: %w", err)
	}
	war, err := loader.Load(in.WarTerms, terms.War)
	if err != nil {
		return inputs{}, fmt.Errorf("load war terms: %w", err)
	}
	peace, err := loader.Load(in.PeaceTerms, terms.Peace)
	if err != nil {
		return inputs{}, fmt.Errorf("load peace terms: %w", err)
	}
	return inputs{book: book, war: war, peace: peace}, nil
}

// classifyBook runs the whole pipeline for cfg and writes every configured
// output. The returned report describes the run. When storeLock is non-nil it
// is held only while the run is written to the store.
func classifyBook(cfg config.Config, loader *terms.Loader, storeLock sync.Locker) (report.Report, error) {
	started := time.Now()
	log := slog.With("book", cfg.Input.Book)

	in, err := loadInputs(cfg.Input, loader)
	if err != nil {
		return report.Report{}, err
	}
	log.Debug("inputs loaded", "lines", len(in.book.Lines), "war_terms", in.war.Len(), "peace_terms", in.peace.Len())

	tokens := tokenize.TokenizeLines(in.book.Lines)
	log.Debug("tokenized", "tokens", len(tokens))

	res, err := pipeline.Run(tokens, in.war, in.peace, cfg.Pipeline.Workers)
	if err != nil {
		return report.Report{}, err
	}
	log.Debug("scored", "chapters", len(res.Chapters), "workers", cfg.Pipeline.Workers)

	if err := report.WriteClassifications(cfg.Output.Path, res.Labels); err != nil {
		return report.Report{}, err
	}

	rep := report.Build(in.book.Title, in.book.SourcePath, len(tokens), res, in.war, in.peace)
	rep.DurationMs = time.Since(started).Milliseconds()

	reportPath := cfg.Output.Report
	if reportPath == "" {
		root, err := workspace.EnsureAt(cfg.Workspace)
		if err != nil {
			return report.Report{}, err
		}
		project, err := workspace.CreateProject(root, in.book.Title)
		if err != nil {
			return report.Report{}, err
		}
		reportPath = project.ReportPath
	}
	if err := report.Save(reportPath, rep); err != nil {
		return report.Report{}, err
	}

	if cfg.Store.Enabled {
		runID, err := storeRun(cfg.Store.Path, rep, started, storeLock)
		if err != nil {
			return report.Report{}, err
		}
		log.Debug("run stored", "run_id", runID, "db", cfg.Store.Path)
	}

	log.Info("chapters classified",
		"chapters", rep.ChapterCount,
		"war", rep.WarChapters,
		"peace", rep.PeaceChapters,
		"output", cfg.Output.Path,
		"report", reportPath,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return rep, nil
}

func storeRun(path string, rep report.Report, started time.Time, lock sync.Locker) (int64, error) {
	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create store dir: %w", err)
	}
	runID, err := db.PersistRun(path, rep, started)
	if err != nil {
		return 0, fmt.Errorf("store run: %w", err)
	}
	return runID, nil
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"warpeace/internal/config"
	"warpeace/internal/report"
	"warpeace/internal/terms"
	"warpeace/internal/workspace"
)

var batchFlags = map[string]string{
	"war-terms":   "input.war_terms",
	"peace-terms": "input.peace_terms",
	"workers":     "pipeline.workers",
	"store":       "store.enabled",
	"db":          "store.path",
}

var (
	batchOutDir   string
	batchParallel int
)

var batchCmd = &cobra.Command{
	Use:   "batch <book>...",
	Short: "Classify several books against the same term lists",
	Long: `Batch classifies every book given on the command line. Each book's results go
to <out-dir>/<title>.txt and its JSON report to <out-dir>/<title>.json. Books
that share a title get a short hash of their path appended to it.

The term lists are read and indexed once and shared by all books.

Example:
  warpeace batch books/*.txt --out-dir results --parallel 4`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, batchFlags)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		reports, err := classifyBooks(cmd.Context(), cfg, args, batchOutDir, batchParallel)
		if err != nil {
			return err
		}
		for _, rep := range reports {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d chapters (%d war-related, %d peace-related)\n",
				rep.SourcePath, rep.ChapterCount, rep.WarChapters, rep.PeaceChapters)
		}
		return nil
	},
}

func init() {
	f := batchCmd.Flags()
	f.StringVar(&batchOutDir, "out-dir", "files/output", "directory for per-book results")
	f.IntVar(&batchParallel, "parallel", 2, "books classified at the same time")
	f.String("war-terms", "", "war term list (default: built-in list)")
	f.String("peace-terms", "", "peace term list (default: built-in list)")
	f.Int("workers", 0, "chapters scored in parallel per book (0 = one per CPU)")
	f.Bool("store", false, "record each run in the sqlite store")
	f.String("db", "", "sqlite store path (default: <workspace>/runs.db)")

	rootCmd.AddCommand(batchCmd)
}

// classifyBooks runs classifyBook for every book, at most parallel at a time.
// Reports come back in the order the books were given. The first failure
// stops books that have not started yet.
func classifyBooks(ctx context.Context, base config.Config, books []string, outDir string, parallel int) ([]report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if parallel <= 0 {
		parallel = 1
	}

	loader := terms.NewLoader(0)
	if _, err := loader.Load(base.Input.WarTerms, terms.War); err != nil {
		return nil, fmt.Errorf("load war terms: %w", err)
	}
	if _, err := loader.Load(base.Input.PeaceTerms, terms.Peace); err != nil {
		return nil, fmt.Errorf("load peace terms: %w", err)
	}

	names, err := outputNames(books)
	if err != nil {
		return nil, err
	}

	// Serialize sqlite writers; each run opens its own connection.
	var storeMu sync.Mutex
	reports := make([]report.Report, len(books))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, book := range books {
		i, book := i, book
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cfg := base
			cfg.Input.Book = book
			cfg.Output.Path = filepath.Join(outDir, names[i]+".txt")
			cfg.Output.Report = filepath.Join(outDir, names[i]+".json")

			rep, err := classifyBook(cfg, loader, &storeMu)
			if err != nil {
				return fmt.Errorf("%s: %w", book, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	slog.Info("batch complete", "books", len(books), "term_lists_cached", loader.Cached())
	return reports, nil
}

// outputNames picks the output base name for each book. Titles used by more
// than one book get "-<hash of the cleaned path>" appended. The same book
// given twice is an error.
func outputNames(books []string) ([]string, error) {
	titles := make([]string, len(books))
	seen := make(map[string]int, len(books))
	paths := make(map[string]bool, len(books))
	for i, book := range books {
		clean := filepath.Clean(book)
		if paths[clean] {
			return nil, fmt.Errorf("book %s given more than once", book)
		}
		paths[clean] = true
		titles[i] = strings.TrimSuffix(filepath.Base(clean), filepath.Ext(clean))
		seen[titles[i]]++
	}

	names := make([]string, len(books))
	taken := make(map[string]bool, len(books))
	for i, title := range titles {
		name := title
		if seen[title] > 1 {
			name = title + "-" + workspace.ProjectID(filepath.Clean(books[i]))
		}
		if taken[name] {
			return nil, fmt.Errorf("book %s: output name %q already used", books[i], name)
		}
		taken[name] = true
		names[i] = name
	}
	return names, nil
}

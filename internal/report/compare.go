package report

import (
	"fmt"

	"warpeace/internal/ingest"
)

// CompareFiles returns the percentage of lines that are equal in both files,
// counted over the lines both files have. Two files with no comparable lines
// score 0.
func CompareFiles(expected, actual string) (float64, error) {
	a, err := ingest.ReadLines(expected)
	if err != nil {
		return 0, fmt.Errorf("read expected: %w", err)
	}
	b, err := ingest.ReadLines(actual)
	if err != nil {
		return 0, fmt.Errorf("read actual: %w", err)
	}
	return CompareLines(a, b), nil
}

func CompareLines(a, b []string) float64 {
	total := min(len(a), len(b))
	if total == 0 {
		return 0
	}
	matching := 0
	for i := 0; i < total; i++ {
		if a[i] == b[i] {
			matching++
		}
	}
	return float64(matching) / float64(total) * 100
}

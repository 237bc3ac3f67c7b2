package workspace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type ProjectInfo struct {
	ID         string
	Root       string
	ReportPath string
}

// CreateProject returns the per-book directory for bookTitle, creating it
// when needed. The same title always maps to the same directory.
func CreateProject(workspaceRoot, bookTitle string) (*ProjectInfo, error) {
	id := ProjectID(bookTitle)
	projectRoot := filepath.Join(workspaceRoot, "projects", id)
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create project dir: %w", err)
	}

	return &ProjectInfo{
		ID:         id,
		Root:       projectRoot,
		ReportPath: filepath.Join(projectRoot, "report.json"),
	}, nil
}

// ProjectID is a short stable hash of title, ignoring case and surrounding space.
func ProjectID(title string) string {
	trimmed := strings.TrimSpace(strings.ToLower(title))
	sum := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(sum[:])[:12]
}

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const BaseDirName = ".warpeace"

func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, BaseDirName), nil
}

func EnsureDefault() (string, error) {
	root, err := DefaultRoot()
	if err != nil {
		return "", err
	}
	return EnsureAt(root)
}

// EnsureAt creates the workspace tree under base and returns base.
func EnsureAt(base string) (string, error) {
	paths := []string{
		base,
		filepath.Join(base, "projects"),
	}

	for _, p := range paths {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", p, err)
		}
	}
	return base, nil
}

func ConfigPath(base string) string {
	return filepath.Join(base, "config.yaml")
}

func StorePath(base string) string {
	return filepath.Join(base, "runs.db")
}

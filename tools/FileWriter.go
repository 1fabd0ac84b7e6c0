package tools

/*
Prepares destinations for files written by the sweep
*/

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory a file will be written into
func EnsureParentDir(fileName string) error {
	dir := filepath.Dir(fileName)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/stipsportal/docintel/constants"
)

// ScanDirectory walks root recursively and returns the processable document
// paths in a deterministic (sorted) order, so batch output order is stable
// across runs.
func ScanDirectory(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if Allowed(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Allowed reports whether a path has a supported document extension.
func Allowed(path string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}

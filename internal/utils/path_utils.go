package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/funvibe/tyfold/internal/config"
)

// FixtureName derives a display name from a fixture path.
// It takes the base filename and removes any recognized fixture extension.
func FixtureName(path string) string {
	name := filepath.Base(path)
	return config.TrimFixtureExt(name)
}

// FixtureFiles expands path into the fixtures to run. A file is returned as
// is; a directory is walked and every fixture file below it is returned in
// lexical order.
func FixtureFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && config.HasFixtureExt(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}

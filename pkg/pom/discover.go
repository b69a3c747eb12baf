package pom

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the descriptor file name searched for in directories.
const FileName = "pom.xml"

// Discover expands paths into descriptor files. Directories are walked
// recursively for files named pom.xml; file arguments are passed through when
// their name ends in "pom.xml" and skipped with a warning otherwise.
//
// Walk errors are yielded with an empty path and the walk continues.
func Discover(paths []string, logger func(string, ...any)) iter.Seq2[string, error] {
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return func(yield func(string, error) bool) {
		for _, path := range paths {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() {
				if !walk(path, yield) {
					return
				}
				continue
			}
			if !strings.HasSuffix(path, FileName) {
				logger("skipping %q: expected a %s file", path, FileName)
				continue
			}
			if !yield(path, nil) {
				return
			}
		}
	}
}

// walk yields every pom.xml below root and reports whether to keep going.
func walk(root string, yield func(string, error) bool) bool {
	stopped := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if !yield("", err) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		}
		if d.IsDir() || d.Name() != FileName {
			return nil
		}
		if !yield(path, nil) {
			stopped = true
			return filepath.SkipAll
		}
		return nil
	})
	return !stopped
}

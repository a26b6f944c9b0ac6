package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoLogFiles is returned when no log file arguments are given.
var ErrNoLogFiles = errors.New("no log files given")

// ExpandGlobs expands log file arguments into a deduplicated, sorted list of
// paths. Arguments that are not globs, or globs that match nothing, are kept
// as literal paths so that opening them reports a useful error. Directories
// matched by a glob are skipped.
func ExpandGlobs(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoLogFiles
	}

	seen := make(map[string]bool)
	var result []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			if info, err := os.Stat(match); err == nil && info.IsDir() {
				continue
			}
			add(match)
		}
	}

	sort.Strings(result)

	return result, nil
}

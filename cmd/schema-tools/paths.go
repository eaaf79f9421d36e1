package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const skippedDir = "node_modules"

// expandPaths resolves files, directories and glob patterns into the JSON
// files to lint. Missing paths are logged and skipped; duplicates are dropped.
func expandPaths(args []string) ([]string, error) {
	var files []string

	seen := map[string]struct{}{}
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}

		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, arg := range args {
		if isPattern(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}

			if len(matches) == 0 {
				slog.Warn("pattern matched no files", "pattern", arg)
			}

			for _, m := range matches {
				add(m)
			}

			continue
		}

		info, err := os.Stat(arg)
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("file not found", "path", arg)
			continue
		}

		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(arg)
			continue
		}

		found, err := findJSONFiles(arg)
		if err != nil {
			return nil, err
		}

		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// findJSONFiles returns the .json files below dir in lexical order, skipping
// hidden directories and node_modules.
func findJSONFiles(dir string) ([]string, error) {
	var out []string

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if p != dir && (strings.HasPrefix(d.Name(), ".") || d.Name() == skippedDir) {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Type().IsRegular() && strings.HasSuffix(d.Name(), ".json") {
			out = append(out, p)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	return out, nil
}

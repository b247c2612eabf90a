// Package advdata indexes the CRX/PCK files under an install's
// "advdata" asset directory by file name. The CLI commands do not
// consult this table.
package advdata

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Table maps a lowercased file name to its full path under an
// advdata directory. A Table is an explicit value threaded through
// the call chain rather than a process-wide lazily-initialized
// global, so tests and concurrent callers never share mutable state.
type Table map[string]string

// Lookup resolves name case-insensitively.
func (t Table) Lookup(name string) (string, bool) {
	path, ok := t[strings.ToLower(name)]
	return path, ok
}

// Build searches baseDir's immediate children for a directory named
// "advdata" (case-insensitive) and indexes every .crx and .pck file
// found under it, recursively. A baseDir that does not exist, or that
// has no advdata subdirectory, yields an empty Table rather than an
// error: asset lookup is always an optional convenience.
func Build(baseDir string) Table {
	table := make(Table)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return table
	}

	var advdataDir string
	for _, e := range entries {
		if e.IsDir() && strings.EqualFold(e.Name(), "advdata") {
			advdataDir = filepath.Join(baseDir, e.Name())
			break
		}
	}
	if advdataDir == "" {
		return table
	}

	filepath.WalkDir(advdataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".crx" && ext != ".pck" {
			return nil
		}
		table[strings.ToLower(d.Name())] = path
		return nil
	})

	return table
}

// GateBasePath returns the directory containing the running
// executable, falling back to the current directory — the advdata
// folder is expected relative to the install, not the caller's cwd.
func GateBasePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

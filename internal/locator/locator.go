// Package locator discovers the price table to ingest from a conventional directory.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is looked up relative to the working directory.
const DefaultDir = "StockPriceCSV"

const csvExt = ".csv"

var (
	ErrDirNotFound  = errors.New("source directory not found")
	ErrNoFiles      = errors.New("no files in source directory")
	ErrNoExtension  = errors.New("file has no extension")
	ErrBadExtension = errors.New("file is not a csv file")
	ErrEmptyFile    = errors.New("file is empty")
)

// Locator picks the first file of Dir and checks it looks like a CSV table.
type Locator struct {
	Dir string
}

// New creates a Locator for dir, falling back to DefaultDir when dir is empty.
func New(dir string) *Locator {
	if dir == "" {
		dir = DefaultDir
	}
	return &Locator{Dir: dir}
}

// Locate returns the path of the first file (by name) in the directory.
func (l *Locator) Locate() (string, error) {
	info, err := os.Stat(l.Dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrDirNotFound, l.Dir)
	}

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return "", fmt.Errorf("read dir %s: %w", l.Dir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		switch {
		case ext == "":
			return "", fmt.Errorf("%w: %s", ErrNoExtension, name)
		case ext != csvExt:
			return "", fmt.Errorf("%w: %s has extension %s", ErrBadExtension, name, ext)
		}

		fi, err := entry.Info()
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", name, err)
		}
		if fi.Size() == 0 {
			return "", fmt.Errorf("%w: %s", ErrEmptyFile, name)
		}
		return filepath.Join(l.Dir, name), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoFiles, l.Dir)
}

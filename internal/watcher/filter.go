package watcher

import (
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns returns patterns for partially written files that
// should never trigger a pass.
func DefaultIgnorePatterns() []string {
	return []string{
		"*.tmp",
		"*.part",
		"*.partial",
		"*.crdownload", // Chrome
		"*.download",   // Safari
		".~*",
		".*.swp",
	}
}

// FileFilter decides which file events are worth a pass.
type FileFilter struct {
	patterns []string
	accept   func(name string) bool
}

// NewFileFilter creates a FileFilter. A nil patterns slice selects
// DefaultIgnorePatterns; a nil accept admits every name not ignored.
func NewFileFilter(patterns []string, accept func(name string) bool) *FileFilter {
	if patterns == nil {
		patterns = DefaultIgnorePatterns()
	}
	return &FileFilter{patterns: patterns, accept: accept}
}

// ShouldIgnore reports whether the base name of path matches an ignore pattern.
// Matching is case-insensitive.
func (f *FileFilter) ShouldIgnore(path string) bool {
	filename := strings.ToLower(filepath.Base(path))

	for _, pattern := range f.patterns {
		if matched, err := filepath.Match(strings.ToLower(pattern), filename); err == nil && matched {
			return true
		}
	}
	return false
}

// Wants reports whether an event on path should schedule a pass.
func (f *FileFilter) Wants(path string) bool {
	if f.ShouldIgnore(path) {
		return false
	}
	if f.accept == nil {
		return true
	}
	return f.accept(filepath.Base(path))
}

// Patterns returns a copy of the ignore patterns.
func (f *FileFilter) Patterns() []string {
	result := make([]string, len(f.patterns))
	copy(result, f.patterns)
	return result
}

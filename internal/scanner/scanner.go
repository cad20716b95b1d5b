// Package scanner handles directory scanning for slicerename.
package scanner

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ScanErrorType represents the type of scanning error.
type ScanErrorType string

const (
	// DirectoryNotFound indicates the directory does not exist or is not a directory.
	DirectoryNotFound ScanErrorType = "DIRECTORY_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions to read the directory.
	PermissionDenied ScanErrorType = "PERMISSION_DENIED"
)

// ScanError represents an error that occurred during directory scanning.
type ScanError struct {
	Type ScanErrorType
	Path string
	Err  error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return string(e.Type) + ": " + e.Path + " (" + e.Err.Error() + ")"
	}
	return string(e.Type) + ": " + e.Path
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ErrNotDirectory is wrapped by a DirectoryNotFound ScanError when the path exists but is not a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// FileEntry represents a candidate file found during scanning.
type FileEntry struct {
	Name      string // Filename only
	Stem      string // Filename without extension
	Extension string // Lowercased extension with leading dot, "" if none
	FullPath  string // Directory joined with Name
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	// Extensions restricts results to these lowercase extensions (with leading dot).
	// An empty list accepts every regular file.
	Extensions []string
}

// Scan lists the regular files directly inside directory, without recursion.
// Symlinks count when they resolve to a regular file; the link itself is what
// gets renamed. Subdirectories, dangling links and other special entries are excluded, as are files
// whose extension is not in opts.Extensions. Results are ordered by
// case-insensitive name, ties broken by the exact name, so a run is reproducible
// across platforms.
func Scan(fsys afero.Fs, directory string, opts ScanOptions) ([]FileEntry, error) {
	info, err := fsys.Stat(directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ScanError{Type: DirectoryNotFound, Path: directory, Err: err}
		}
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	if !info.IsDir() {
		return nil, &ScanError{Type: DirectoryNotFound, Path: directory, Err: ErrNotDirectory}
	}

	entries, err := afero.ReadDir(fsys, directory)
	if err != nil {
		if os.IsPermission(err) {
			return nil, &ScanError{Type: PermissionDenied, Path: directory, Err: err}
		}
		return nil, err
	}

	allowed := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[ext] = true
	}

	files := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if !isFile(fsys, filepath.Join(directory, entry.Name()), entry) {
			continue
		}

		stem, ext := SplitName(entry.Name())
		if len(allowed) > 0 && !allowed[ext] {
			continue
		}

		files = append(files, FileEntry{
			Name:      entry.Name(),
			Stem:      stem,
			Extension: ext,
			FullPath:  filepath.Join(directory, entry.Name()),
		})
	}

	SortEntries(files)
	return files, nil
}

// isFile reports whether entry is a regular file or a symlink resolving to one.
// Dangling links and links to directories are not files.
func isFile(fsys afero.Fs, path string, entry os.FileInfo) bool {
	if entry.Mode().IsRegular() {
		return true
	}
	if entry.Mode()&os.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// SortEntries orders entries by case-insensitive name, then by exact name.
func SortEntries(files []FileEntry) {
	sort.SliceStable(files, func(i, j int) bool {
		li, lj := strings.ToLower(files[i].Name), strings.ToLower(files[j].Name)
		if li != lj {
			return li < lj
		}
		return files[i].Name < files[j].Name
	})
}

// SplitName splits a filename into its stem and lowercased extension.
// A leading dot does not start an extension, so ".png" has stem ".png" and no extension.
func SplitName(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	if ext == name || ext == "." {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), strings.ToLower(ext)
}

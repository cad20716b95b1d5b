// Package organizer performs the rename step for slicerename.
package organizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"slicerename/internal/scanner"
)

// RenameErrorType represents the type of rename error.
type RenameErrorType string

const (
	// SourceNotFound indicates the source file disappeared before it could be renamed.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
	// RenameFailed covers any other filesystem failure during the rename.
	RenameFailed RenameErrorType = "RENAME_FAILED"
)

// RenameError represents an error that occurred while renaming a file.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// RenameResult describes a rename that was performed or, in dry-run mode, planned.
type RenameResult struct {
	SourcePath      string
	DestinationPath string
	RequestedName   string // Target name before collision resolution
	IsCollision     bool   // True if a counter suffix was appended
	DryRun          bool   // True if nothing was changed on disk
}

// SourceName returns the base name of the source file.
func (r *RenameResult) SourceName() string {
	return filepath.Base(r.SourcePath)
}

// DestinationName returns the base name of the resolved destination.
func (r *RenameResult) DestinationName() string {
	return filepath.Base(r.DestinationPath)
}

// Rename moves file to targetName inside the file's own directory.
// The target is passed through ResolveCollision immediately before the move,
// so an existing entry is never overwritten. With dryRun set, the resolved
// plan is returned and the filesystem is left untouched.
func Rename(fsys afero.Fs, file scanner.FileEntry, targetName string, dryRun bool) (*RenameResult, error) {
	dir := filepath.Dir(file.FullPath)

	if _, err := fsys.Stat(file.FullPath); err != nil {
		return nil, classifyError(file.FullPath, err)
	}

	resolved := ResolveCollision(fsys, dir, targetName)
	result := &RenameResult{
		SourcePath:      file.FullPath,
		DestinationPath: filepath.Join(dir, resolved),
		RequestedName:   targetName,
		IsCollision:     resolved != targetName,
		DryRun:          dryRun,
	}

	if dryRun {
		return result, nil
	}

	if err := fsys.Rename(result.SourcePath, result.DestinationPath); err != nil {
		return nil, classifyError(result.SourcePath, err)
	}

	return result, nil
}

func classifyError(path string, err error) *RenameError {
	switch {
	case os.IsNotExist(err):
		return &RenameError{Type: SourceNotFound, Path: path, Err: err}
	case os.IsPermission(err):
		return &RenameError{Type: PermissionDenied, Path: path, Err: err}
	default:
		return &RenameError{Type: RenameFailed, Path: path, Err: err}
	}
}

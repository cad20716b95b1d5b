// Package orchestrator runs the slicerename pass: scan, classify, resolve, rename.
package orchestrator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"slicerename/internal/classifier"
	"slicerename/internal/config"
	"slicerename/internal/logger"
	"slicerename/internal/organizer"
	"slicerename/internal/output"
	"slicerename/internal/scanner"
)

// Outcome is the terminal state of one file in a pass.
type Outcome string

const (
	Renamed      Outcome = "RENAMED"      // Moved to its canonical name
	Previewed    Outcome = "PREVIEWED"    // Would be renamed; dry run
	Canonical    Outcome = "CANONICAL"    // Already canonical, skipped silently
	Unrecognized Outcome = "UNRECOGNIZED" // Matched no pattern, left unchanged
	Failed       Outcome = "FAILED"       // The rename itself failed
)

// Result represents the outcome of processing a single file.
type Result struct {
	SourcePath      string
	DestinationPath string // Empty unless Renamed or Previewed
	Outcome         Outcome
	IsCollision     bool
	Error           error
}

// Orchestrator holds everything one pass needs. It keeps no state between passes.
type Orchestrator struct {
	config *config.Configuration
	fs     afero.Fs
	out    *output.Output
	log    *slog.Logger
}

// New creates an Orchestrator. A nil logger discards diagnostics.
func New(cfg *config.Configuration, fsys afero.Fs, out *output.Output, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = logger.Discard().Logger
	}
	return &Orchestrator{config: cfg, fs: fsys, out: out, log: log}
}

// Run executes one pass over the configured directory.
//
// A missing directory aborts the pass before any file is touched and is
// returned as a *scanner.ScanError. Failures while renaming individual files
// are recorded in the summary and the pass continues with the next file.
func (o *Orchestrator) Run() (*Summary, error) {
	start := time.Now()
	log := o.log.With("dir", o.config.Directory, "dry_run", o.config.DryRun)

	files, err := scanner.Scan(o.fs, o.config.Directory, scanner.ScanOptions{
		Extensions: o.config.Extensions,
	})
	if err != nil {
		log.Error("scan failed", "error", err)
		return nil, fmt.Errorf("failed to scan %s: %w", o.config.Directory, err)
	}
	log.Debug("scan complete", "candidates", len(files))

	summary := &Summary{
		DryRun:     o.config.DryRun,
		TotalFiles: len(files),
		Results:    make([]Result, 0, len(files)),
	}

	o.out.StartProgress(len(files))
	for i, file := range files {
		o.out.UpdateProgress(i + 1)
		summary.add(o.processFile(file, log))
	}
	o.out.EndProgress()

	summary.Duration = time.Since(start)
	o.out.Info("%s", summary.PrintSummary())
	log.Info("pass finished",
		"renamed", summary.Renamed,
		"canonical", summary.Canonical,
		"unrecognized", summary.Unrecognized,
		"errors", summary.Errors,
		"duration", summary.Duration)

	return summary, nil
}

// processFile classifies and, if it matches, renames a single file.
func (o *Orchestrator) processFile(file scanner.FileEntry, log *slog.Logger) Result {
	classification := classifier.Classify(file.Stem)

	switch {
	case classification.IsCanonical():
		o.out.Canonical(file.Name)
		log.Debug("already canonical", "file", file.Name)
		return Result{SourcePath: file.FullPath, Outcome: Canonical}

	case classification.IsUnrecognized():
		o.out.Unrecognized(file.Name)
		log.Info("unrecognized file", "file", file.Name)
		return Result{SourcePath: file.FullPath, Outcome: Unrecognized}
	}

	res, err := organizer.Rename(o.fs, file, classification.TargetName, o.config.DryRun)
	if err != nil {
		o.out.Failed(file.Name, err)
		log.Error("rename failed", "file", file.Name, "target", classification.TargetName, "error", err)
		return Result{SourcePath: file.FullPath, Outcome: Failed, Error: err}
	}

	if res.IsCollision {
		o.out.Collision(res.RequestedName, res.DestinationName())
		log.Debug("target taken", "requested", res.RequestedName, "resolved", res.DestinationName())
	}

	outcome := Renamed
	if res.DryRun {
		outcome = Previewed
		o.out.Preview(file.Name, res.DestinationName())
	} else {
		o.out.Renamed(file.Name, res.DestinationName())
	}
	log.Info("rename", "src", file.Name, "dst", res.DestinationName(), "applied", !res.DryRun)

	return Result{
		SourcePath:      res.SourcePath,
		DestinationPath: res.DestinationPath,
		Outcome:         outcome,
		IsCollision:     res.IsCollision,
	}
}

// Run is a convenience wrapper that builds an Orchestrator and runs one pass.
func Run(cfg *config.Configuration, fsys afero.Fs, out *output.Output, log *slog.Logger) (*Summary, error) {
	return New(cfg, fsys, out, log).Run()
}

// Package main provides the CLI entry point for slicerename.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"slicerename/internal/classifier"
	"slicerename/internal/config"
	"slicerename/internal/logger"
	"slicerename/internal/orchestrator"
	"slicerename/internal/output"
	"slicerename/internal/scanner"
	"slicerename/internal/watcher"
)

// errFilesFailed signals that the pass finished but some renames failed.
// The failures have already been reported line by line.
var errFilesFailed = errors.New("one or more files could not be renamed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errFilesFailed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slicerename [flags] [directory]",
		Short: "Rename scanner slices to s<row>-<col>.png",
		Long: `Rename files named slice_<n>_r<row>_c<col>.<ext> in a directory to
s<row>-<col>.png. Files already in that form are left alone, anything else
is reported and left unchanged. Existing files are never overwritten: a
taken name gets a _01, _02, ... suffix.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.DefineFlags(cmd.Flags())
	return cmd
}

func execute(ctx context.Context, cfg *config.Configuration, stdout, stderr io.Writer) error {
	log, err := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: stderr,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	out := output.New(output.Config{
		Verbose:   cfg.Verbose,
		Writer:    stdout,
		ErrWriter: stderr,
		IsTTY:     output.IsTerminal(stdout),
	})
	fsys := afero.NewOsFs()

	if !cfg.Watch {
		summary, err := orchestrator.Run(cfg, fsys, out, log.Logger)
		if err != nil {
			return err
		}
		if summary.HasErrors() {
			return errFilesFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(&watcher.WatchConfig{
		Debounce:       cfg.Debounce,
		IgnorePatterns: watcher.DefaultIgnorePatterns(),
		Accept:         acceptSlice(cfg),
	}, func() (watcher.PassResult, error) {
		summary, err := orchestrator.Run(cfg, fsys, out, log.Logger)
		if err != nil {
			return watcher.PassResult{}, err
		}
		return watcher.PassResult{Renamed: summary.Renamed, Errors: summary.Errors}, nil
	}, log.Logger)

	summary, err := w.Run(ctx, cfg.Directory)
	if summary != nil {
		out.Info("%s", summary.String())
	}
	if err != nil {
		return err
	}
	if summary.Errors > 0 {
		return errFilesFailed
	}
	return nil
}

// acceptSlice admits eligible files whose stem is still in slice form.
// Canonical names, including the ones we produce, never trigger a pass.
func acceptSlice(cfg *config.Configuration) func(name string) bool {
	return func(name string) bool {
		stem, ext := scanner.SplitName(name)
		return cfg.HasExtension(ext) && classifier.Classify(stem).IsMatched()
	}
}

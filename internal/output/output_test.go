package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newBuffered(verbose, tty bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	out := New(Config{
		Verbose:   verbose,
		Writer:    &stdout,
		ErrWriter: &stderr,
		IsTTY:     tty,
	})
	return out, &stdout, &stderr
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name string
		emit func(o *Output)
		want string
	}{
		{"preview", func(o *Output) { o.Preview("slice_1_r1_c2.jpg", "s1-2.png") }, "[DRY] slice_1_r1_c2.jpg -> s1-2.png\n"},
		{"renamed", func(o *Output) { o.Renamed("slice_1_r1_c2.jpg", "s1-2_01.png") }, "[REN] slice_1_r1_c2.jpg -> s1-2_01.png\n"},
		{"unrecognized", func(o *Output) { o.Unrecognized("cover.png") }, "[???] cover.png: unrecognized, unchanged\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stdout, stderr := newBuffered(false, false)
			tt.emit(out)

			if stdout.String() != tt.want {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.want)
			}
			if stderr.Len() != 0 {
				t.Errorf("unexpected stderr: %q", stderr.String())
			}
		})
	}
}

func TestFailedGoesToErrWriter(t *testing.T) {
	out, stdout, stderr := newBuffered(false, false)

	out.Failed("slice_1_r1_c1.png", errors.New("permission denied"))

	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
	if want := "[ERR] slice_1_r1_c1.png: permission denied\n"; stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}

func TestVerboseOnlyLines(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
	}{
		{"verbose disabled - no output", false},
		{"verbose enabled - has output", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stdout, _ := newBuffered(tt.verbose, false)

			out.Canonical("s1-2.png")
			out.Collision("s1-2.png", "s1-2_01.png")

			got := stdout.String()
			if !tt.verbose && got != "" {
				t.Errorf("expected no output when verbose disabled, got: %q", got)
			}
			if tt.verbose {
				if !strings.Contains(got, "[---] s1-2.png: already canonical\n") {
					t.Errorf("missing canonical line in %q", got)
				}
				if !strings.Contains(got, "[DUP] s1-2.png exists, using s1-2_01.png\n") {
					t.Errorf("missing collision line in %q", got)
				}
			}
		})
	}
}

func TestInfoAddsSingleNewline(t *testing.T) {
	out, stdout, _ := newBuffered(false, false)

	out.Info("one")
	out.Info("two\n")

	if stdout.String() != "one\ntwo\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestNewWithNilWriters(t *testing.T) {
	out := New(Config{})
	if out.config.Writer == nil || out.config.ErrWriter == nil {
		t.Error("New should default nil writers to stdout/stderr")
	}
}

func TestProgressLifecycle(t *testing.T) {
	out, stdout, _ := newBuffered(false, true)

	out.StartProgress(10)
	out.UpdateProgress(5)
	if !strings.Contains(stdout.String(), "\rChecking file 5/10...") {
		t.Errorf("expected progress line, got: %q", stdout.String())
	}

	out.Renamed("a.png", "s1-1.png")
	if !strings.Contains(stdout.String(), "\r"+strings.Repeat(" ", 60)+"\r[REN] a.png -> s1-1.png\n") {
		t.Errorf("status line should clear the progress line first, got: %q", stdout.String())
	}

	out.EndProgress()
	if !strings.HasSuffix(stdout.String(), "\r") {
		t.Errorf("expected output to end with carriage return after EndProgress, got: %q", stdout.String())
	}

	before := stdout.Len()
	out.UpdateProgress(6)
	if stdout.Len() != before {
		t.Error("UpdateProgress after EndProgress should draw nothing")
	}
}

// Feature: slice-rename, Property: Progress Never Pollutes Pipes
func TestProgressVisibility(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("progress only appears when TTY and not verbose", prop.ForAll(
		func(isTTY, verbose bool, current, total int) bool {
			out, stdout, _ := newBuffered(verbose, isTTY)

			out.StartProgress(total)
			out.UpdateProgress(current)
			out.EndProgress()

			hasProgress := strings.Contains(stdout.String(), "Checking file")
			return hasProgress == (isTTY && !verbose)
		},
		gen.Bool(),
		gen.Bool(),
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.Property("status lines always appear regardless of TTY", prop.ForAll(
		func(isTTY, verbose bool, name string) bool {
			out, stdout, _ := newBuffered(verbose, isTTY)

			out.StartProgress(1)
			out.Unrecognized(name)
			out.EndProgress()

			return strings.Contains(stdout.String(), "[???] "+name+": unrecognized, unchanged\n")
		},
		gen.Bool(),
		gen.Bool(),
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestIsTerminalFalseForBuffers(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("a bytes.Buffer is never a terminal")
	}
}

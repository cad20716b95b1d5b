// Package output prints the line-oriented status messages of slicerename.
// Normal status lines go to Writer, failures to ErrWriter. On a terminal a
// transient progress line is shown while a pass runs.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Also print lines for silently skipped files
	Writer    io.Writer // Status lines (default: os.Stdout)
	ErrWriter io.Writer // Failure lines (default: os.Stderr)
	IsTTY     bool      // Whether Writer is a terminal
}

// Output writes status lines and the optional progress indicator.
type Output struct {
	config Config

	mu             sync.Mutex
	progressActive bool
	progressTotal  int
}

// New creates a new Output instance with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	return &Output{config: config}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Preview reports a rename that dry-run mode would perform.
func (o *Output) Preview(src, dst string) {
	o.Info("[DRY] %s -> %s", src, dst)
}

// Renamed reports a rename that was performed.
func (o *Output) Renamed(src, dst string) {
	o.Info("[REN] %s -> %s", src, dst)
}

// Unrecognized reports a file that matched no known pattern and was left unchanged.
func (o *Output) Unrecognized(name string) {
	o.Info("[???] %s: unrecognized, unchanged", name)
}

// Canonical reports a file that is already in canonical form. Verbose only.
func (o *Output) Canonical(name string) {
	o.Verbose("[---] %s: already canonical", name)
}

// Collision reports that a target was taken and a suffixed name was chosen. Verbose only.
func (o *Output) Collision(requested, resolved string) {
	o.Verbose("[DUP] %s exists, using %s", requested, resolved)
}

// Failed reports a file whose rename failed.
func (o *Output) Failed(name string, err error) {
	o.Error("[ERR] %s: %v", name, err)
}

// Verbose prints a line only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	o.println(o.config.Writer, format, args...)
}

// Info prints a line that is always shown.
func (o *Output) Info(format string, args ...interface{}) {
	o.println(o.config.Writer, format, args...)
}

// Error prints a line to ErrWriter.
func (o *Output) Error(format string, args ...interface{}) {
	o.println(o.config.ErrWriter, format, args...)
}

func (o *Output) println(w io.Writer, format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.clearProgressLocked()
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

// showProgress reports whether the progress line is enabled at all.
// It is never drawn on pipes or in verbose mode.
func (o *Output) showProgress() bool {
	return o.config.IsTTY && !o.config.Verbose
}

func (o *Output) clearProgressLocked() {
	if o.progressActive && o.config.IsTTY {
		fmt.Fprint(o.config.Writer, "\r"+strings.Repeat(" ", 60)+"\r")
	}
}

// StartProgress begins a progress session over total files.
func (o *Output) StartProgress(total int) {
	if !o.showProgress() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.progressActive = true
	o.progressTotal = total
}

// UpdateProgress redraws the progress line in place.
func (o *Output) UpdateProgress(current int) {
	if !o.showProgress() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.progressActive {
		return
	}
	fmt.Fprintf(o.config.Writer, "\rChecking file %d/%d...", current, o.progressTotal)
}

// EndProgress clears the progress line.
func (o *Output) EndProgress() {
	if !o.showProgress() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.progressActive {
		return
	}
	o.clearProgressLocked()
	o.progressActive = false
}

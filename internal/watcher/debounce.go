package watcher

import (
	"sort"
	"sync"
	"time"
)

// Debouncer delays a pass until file activity in the directory settles.
// Every Add restarts one shared timer; when it finally fires, the callback
// receives the names collected since the last firing.
type Debouncer struct {
	delay    time.Duration
	timer    *time.Timer
	pending  map[string]struct{}
	callback func(names []string)
	mu       sync.Mutex
}

// NewDebouncer creates a Debouncer that calls callback once activity has been
// quiet for delay.
func NewDebouncer(delay time.Duration, callback func(names []string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		pending:  make(map[string]struct{}),
		callback: callback,
	}
}

// Add records name and restarts the quiet period.
func (d *Debouncer) Add(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[name] = struct{}{}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	names := make([]string, 0, len(d.pending))
	for name := range d.pending {
		names = append(names, name)
	}
	d.pending = make(map[string]struct{})
	d.timer = nil
	d.mu.Unlock()

	if len(names) == 0 || d.callback == nil {
		return
	}
	sort.Strings(names)
	d.callback(names)
}

// Cancel drops everything pending without firing.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]struct{})
}

// PendingCount returns the number of distinct names waiting for the timer.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// IsPending reports whether name is waiting for the timer.
func (d *Debouncer) IsPending(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[name]
	return ok
}

// Delay returns the configured quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Package progress provides a thread-safe handle shared between a
// long-running simulation job and a UI thread observing it.
package progress

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Progress is created once and reused across jobs. It holds an exclusive
// job-in-progress slot, an atomic running flag the UI can poll without
// blocking, and an append-only timestamped log buffer guarded by its own
// lock so a UI thread can snapshot a stable view while the worker appends.
type Progress struct {
	jobMu   sync.Mutex
	running atomic.Bool

	logMu     sync.RWMutex
	buf       strings.Builder
	createdAt time.Time
	lastLog   time.Time
}

// New creates a Progress handle. lap_s and total_s reported by Logf are
// measured relative to this call.
func New() *Progress {
	now := time.Now()
	return &Progress{createdAt: now, lastLog: now}
}

// TryStart claims the exclusive job slot, returning false without side
// effects if a job is already running.
func (p *Progress) TryStart() bool {
	if !p.jobMu.TryLock() {
		return false
	}
	p.running.Store(true)
	return true
}

// Finish releases the exclusive job slot claimed by a successful TryStart.
// Callers must invoke it on every exit path of a started job.
func (p *Progress) Finish() {
	p.running.Store(false)
	p.jobMu.Unlock()
}

// Running reports whether a job currently holds the exclusive slot.
func (p *Progress) Running() bool {
	return p.running.Load()
}

// Logf appends a "[lap_s/total_s] message" line to the log buffer. lap_s is
// the time elapsed since the previous Logf call; total_s since New.
func (p *Progress) Logf(format string, args ...any) {
	now := time.Now()
	msg := fmt.Sprintf(format, args...)

	p.logMu.Lock()
	defer p.logMu.Unlock()
	lap := now.Sub(p.lastLog)
	total := now.Sub(p.createdAt)
	p.lastLog = now
	fmt.Fprintf(&p.buf, "[%.3fs/%.3fs] %s\n", lap.Seconds(), total.Seconds(), msg)
}

// Clear empties the log buffer.
func (p *Progress) Clear() {
	p.logMu.Lock()
	defer p.logMu.Unlock()
	p.buf.Reset()
}

// View invokes fn with the current log contents while holding the read
// lock, giving the caller a stable snapshot for the duration of the call.
func (p *Progress) View(fn func(contents string)) {
	p.logMu.RLock()
	defer p.logMu.RUnlock()
	fn(p.buf.String())
}

// Read returns a copy of the current log contents.
func (p *Progress) Read() string {
	p.logMu.RLock()
	defer p.logMu.RUnlock()
	return p.buf.String()
}

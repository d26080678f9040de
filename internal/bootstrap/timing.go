package bootstrap

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ubytes/appplatform/internal/logging"
)

// StartupTimer records how long each startup phase took. Safe for use from
// the parallel init goroutines.
type StartupTimer struct {
	start  time.Time
	phases map[string]time.Duration
	order  []string
	last   time.Time
	mu     sync.Mutex
}

// NewStartupTimer creates a new timer starting from now.
func NewStartupTimer() *StartupTimer {
	now := time.Now()
	return &StartupTimer{
		start:  now,
		phases: make(map[string]time.Duration),
		order:  make([]string, 0),
		last:   now,
	}
}

// Mark records the duration since the last mark (or start) for the given phase.
func (t *StartupTimer) Mark(phase string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.phases[phase] = now.Sub(t.last)
	t.order = append(t.order, phase)
	t.last = now
}

// MarkDuration records a duration measured elsewhere, such as a phase that
// ran in its own goroutine.
func (t *StartupTimer) MarkDuration(phase string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.phases[phase] = d
	t.order = append(t.order, phase)
}

// Total returns the time elapsed since NewStartupTimer.
func (t *StartupTimer) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.start)
}

// Phases returns the recorded phase names in the order they were marked.
func (t *StartupTimer) Phases() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.order)
}

// Log writes every phase duration on one debug line.
func (t *StartupTimer) Log(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := logging.FromContext(ctx).Debug().Dur("total", time.Since(t.start))
	for _, phase := range t.order {
		if dur, ok := t.phases[phase]; ok {
			event = event.Dur(phase, dur)
		}
	}
	event.Msg("startup timing")
}

// Package platform manages native windows and the web views embedded in them
// behind one API. Every type in this package is bound to a Loop and must only
// be used from the goroutine running that loop.
package platform

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/internal/mainloop"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithStrictPreconditions makes precondition violations panic instead of
// returning an error.
func WithStrictPreconditions(strict bool) LoopOption {
	return func(l *Loop) {
		l.strict = strict
	}
}

// Loop is the process-scoped UI event loop. It owns the driver, tracks live
// windows and web views, and cancels outstanding web view setups on Close.
type Loop struct {
	drv     driver.Driver
	logger  zerolog.Logger
	strict  bool
	resizes *mainloop.Coalescer

	counter atomic.Uint64
	closed  atomic.Bool

	mu       sync.Mutex
	windows  map[uint64]*Window
	webviews map[uint64]*WebView
	setups   map[*setupToken]struct{}
}

// NewLoop attaches drv to the OS message loop. Call it from the thread that
// will call Run.
func NewLoop(ctx context.Context, drv driver.Driver, opts ...LoopOption) (*Loop, error) {
	if drv == nil {
		return nil, fmt.Errorf("platform: nil driver")
	}

	l := &Loop{
		drv:      drv,
		logger:   logging.FromContext(ctx).With().Str("component", "loop").Str("driver", drv.Name()).Logger(),
		windows:  make(map[uint64]*Window),
		webviews: make(map[uint64]*WebView),
		setups:   make(map[*setupToken]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.resizes = mainloop.NewCoalescer(l.Post)

	if err := drv.Init(ctx); err != nil {
		return nil, fmt.Errorf("init %s driver: %w", drv.Name(), err)
	}

	l.logger.Debug().Bool("strict", l.strict).Msg("event loop initialized")
	return l, nil
}

// Driver returns the backend driving this loop.
func (l *Loop) Driver() driver.Driver {
	return l.drv
}

// Run blocks dispatching native events until Quit is called or ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	if l.closed.Load() {
		return &PreconditionError{Op: "Loop.Run", State: "closed"}
	}
	l.logger.Debug().Msg("event loop running")
	err := l.drv.Run(ctx)
	l.logger.Debug().Err(err).Msg("event loop stopped")
	return err
}

// Quit asks Run to return. Safe from any goroutine.
func (l *Loop) Quit() {
	l.drv.Quit()
}

// Post schedules fn on the UI thread. Functions posted after Close are
// dropped. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil || l.closed.Load() {
		return
	}
	l.drv.Post(func() {
		if l.closed.Load() {
			return
		}
		fn()
	})
}

// Close tears the loop down: outstanding setups are cancelled so their
// completions never reach application code, live web views and windows are
// destroyed, and the driver is shut down. Close is idempotent.
func (l *Loop) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.resizes.Destroy()

	l.mu.Lock()
	tokens := make([]*setupToken, 0, len(l.setups))
	for t := range l.setups {
		tokens = append(tokens, t)
	}
	webviews := make([]*WebView, 0, len(l.webviews))
	for _, wv := range l.webviews {
		webviews = append(webviews, wv)
	}
	windows := make([]*Window, 0, len(l.windows))
	for _, w := range l.windows {
		windows = append(windows, w)
	}
	l.mu.Unlock()

	for _, t := range tokens {
		t.cancel()
	}
	for _, wv := range webviews {
		wv.Destroy()
	}
	for _, w := range windows {
		w.Destroy()
	}

	l.drv.Shutdown()
	l.logger.Debug().
		Int("cancelled_setups", len(tokens)).
		Int("webviews", len(webviews)).
		Int("windows", len(windows)).
		Msg("event loop closed")
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}

// PendingSetups returns the number of BeginSetup calls still in flight.
func (l *Loop) PendingSetups() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.setups)
}

func (l *Loop) nextID() uint64 {
	return l.counter.Add(1)
}

func (l *Loop) trackWindow(w *Window) {
	l.mu.Lock()
	l.windows[w.id] = w
	l.mu.Unlock()
}

func (l *Loop) untrackWindow(w *Window) {
	l.mu.Lock()
	delete(l.windows, w.id)
	l.mu.Unlock()
}

func (l *Loop) trackWebView(wv *WebView) {
	l.mu.Lock()
	l.webviews[wv.id] = wv
	l.mu.Unlock()
}

func (l *Loop) untrackWebView(wv *WebView) {
	l.mu.Lock()
	delete(l.webviews, wv.id)
	l.mu.Unlock()
}

func (l *Loop) trackSetup(t *setupToken) {
	l.mu.Lock()
	l.setups[t] = struct{}{}
	l.mu.Unlock()
}

func (l *Loop) untrackSetup(t *setupToken) {
	l.mu.Lock()
	delete(l.setups, t)
	l.mu.Unlock()
}

// violation logs a precondition violation and returns it, or panics in strict
// mode.
func (l *Loop) violation(err *PreconditionError) error {
	l.logger.Error().Str("op", err.Op).Str("state", err.State).Msg(err.Error())
	if l.strict {
		panic(err)
	}
	return err
}

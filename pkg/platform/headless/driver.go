// Package headless is an in-process backend with no display. It keeps
// window geometry in memory, runs hosted content as JavaScript on a sobek
// runtime, and exposes hooks to inject the events a real window system or
// browser engine would raise.
//
// All work is queued and executed in FIFO order by Run or Pump, which stands
// in for the native event loop.
package headless

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// DefaultScreen is the simulated monitor.
var DefaultScreen = core.NewRect2i(0, 0, 1920, 1080)

// TitleBarHeight is subtracted from the inner size of decorated windows.
const TitleBarHeight = 32

// Option configures a Driver.
type Option func(*Driver)

// WithScreen sets the monitor bounds windows are clamped to.
func WithScreen(screen core.Rect2i) Option {
	return func(d *Driver) {
		d.screen = screen
	}
}

// WithSetupDelay delays web view readiness by n loop iterations.
func WithSetupDelay(n int) Option {
	return func(d *Driver) {
		d.setupDelay = n
	}
}

// WithContent serves script as the hosted content of url.
func WithContent(url, script string) Option {
	return func(d *Driver) {
		d.pages[url] = script
	}
}

// Driver implements driver.Driver.
type Driver struct {
	logger zerolog.Logger

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
	quit  chan struct{}
	down  bool

	screen     core.Rect2i
	setupDelay int
	pages      map[string]string
	windowErr  error
	webviewErr error

	windows  []*Window
	webviews []*WebView
}

var _ driver.Driver = (*Driver)(nil)

func New(opts ...Option) *Driver {
	d := &Driver{
		logger: zerolog.Nop(),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}, 1),
		screen: DefaultScreen,
		pages:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) Name() string {
	return "headless"
}

func (d *Driver) Init(ctx context.Context) error {
	d.logger = logging.FromContext(ctx).With().Str("component", "headless").Logger()
	d.logger.Debug().
		Uint32("screen_w", d.screen.Size.X).
		Uint32("screen_h", d.screen.Size.Y).
		Msg("headless driver initialized")
	return nil
}

// Run pumps the queue until Quit is called or ctx ends.
func (d *Driver) Run(ctx context.Context) error {
	for {
		d.Pump()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.quit:
			return nil
		case <-d.wake:
		}
	}
}

func (d *Driver) Quit() {
	select {
	case d.quit <- struct{}{}:
	default:
	}
}

func (d *Driver) Post(fn func()) {
	d.mu.Lock()
	if d.down {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// PumpOnce runs the functions queued at the time of the call and returns how
// many ran. Functions they post wait for the next iteration.
func (d *Driver) PumpOnce() int {
	d.mu.Lock()
	batch := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pump runs loop iterations until the queue is empty and returns the total
// number of functions run.
func (d *Driver) Pump() int {
	total := 0
	for {
		n := d.PumpOnce()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Pending returns the number of queued functions.
func (d *Driver) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// FailNextWindow makes the next NewWindow call fail with err.
func (d *Driver) FailNextWindow(err error) {
	d.windowErr = err
}

// FailNextWebView makes the next web view setup complete with err.
func (d *Driver) FailNextWebView(err error) {
	d.webviewErr = err
}

func (d *Driver) NewWindow(cfg driver.WindowConfig, events driver.WindowEvents) (driver.NativeWindow, error) {
	if err := d.windowErr; err != nil {
		d.windowErr = nil
		return nil, err
	}

	bounds := core.Rect2i{Size: cfg.Size}
	if cfg.Position != nil {
		bounds.Position = *cfg.Position
	} else {
		bounds.Position = d.centered(cfg.Size)
	}

	w := &Window{
		d:          d,
		title:      cfg.Title,
		bounds:     bounds.Clamp(d.screen),
		borderless: cfg.Borderless,
		background: cfg.Background,
		events:     events,
	}
	d.windows = append(d.windows, w)
	d.logger.Debug().Str("title", cfg.Title).Msg("window created")
	return w, nil
}

func (d *Driver) centered(size core.Vec2u) core.Vec2i {
	x := int64(d.screen.Position.X) + (int64(d.screen.Size.X)-int64(size.X))/2
	y := int64(d.screen.Position.Y) + (int64(d.screen.Size.Y)-int64(size.Y))/2
	return core.Vec2i{X: int32(max(x, 0)), Y: int32(max(y, 0))}
}

// CreateWebView completes on a later loop iteration, after the configured
// setup delay.
func (d *Driver) CreateWebView(req driver.WebViewRequest, done func(driver.NativeWebView, error)) {
	parent, ok := req.Parent.(*Window)
	failure := d.webviewErr
	d.webviewErr = nil

	d.after(d.setupDelay+1, func() {
		if failure != nil {
			done(nil, failure)
			return
		}
		if !ok || parent.destroyed {
			done(nil, errParentGone)
			return
		}

		wv := &WebView{
			d:            d,
			parent:       parent,
			settings:     req.Settings,
			events:       req.Events,
			transparent:  req.Settings.TransparentBackground,
			accelerators: req.Settings.Accelerators,
			bounds:       core.Rect2i{Size: parent.InnerSize().Size},
		}
		if req.Settings.BackgroundColor != nil {
			wv.background = *req.Settings.BackgroundColor
		}
		d.webviews = append(d.webviews, wv)
		done(wv, nil)
	})
}

// after runs fn n loop iterations from now.
func (d *Driver) after(n int, fn func()) {
	if n <= 1 {
		d.Post(fn)
		return
	}
	d.Post(func() {
		d.after(n-1, fn)
	})
}

// Shutdown drops queued functions and refuses new ones.
func (d *Driver) Shutdown() {
	d.mu.Lock()
	dropped := len(d.queue)
	d.queue = nil
	d.down = true
	d.mu.Unlock()
	d.logger.Debug().Int("dropped", dropped).Msg("headless driver shut down")
}

// Windows returns every window created so far, live or not.
func (d *Driver) Windows() []*Window {
	return append([]*Window(nil), d.windows...)
}

// WebViews returns every web view created so far, live or not.
func (d *Driver) WebViews() []*WebView {
	return append([]*WebView(nil), d.webviews...)
}

// LastWebView returns the most recently created web view, or nil.
func (d *Driver) LastWebView() *WebView {
	if len(d.webviews) == 0 {
		return nil
	}
	return d.webviews[len(d.webviews)-1]
}

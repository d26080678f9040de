//go:build webkit_cgo

package webkitgtk

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// Driver implements driver.Driver on GTK4.
type Driver struct {
	logger  zerolog.Logger
	loop    *glib.MainLoop
	down    atomic.Bool
	windows atomic.Uint64
}

var _ driver.Driver = (*Driver)(nil)

// Compiled reports whether the GTK driver is part of this binary.
const Compiled = true

// New returns the GTK driver.
func New() (driver.Driver, error) {
	return &Driver{logger: zerolog.Nop()}, nil
}

func (d *Driver) Name() string {
	return "webkitgtk"
}

// Init locks the calling goroutine to its OS thread and initializes GTK.
func (d *Driver) Init(ctx context.Context) error {
	runtime.LockOSThread()
	d.logger = logging.FromContext(ctx).With().Str("component", "webkitgtk").Logger()

	if !gtk.InitCheck() {
		return fmt.Errorf("%w: gtk_init_check failed (no display?)", driver.ErrUnavailable)
	}
	d.loop = glib.NewMainLoop(nil, false)
	d.logger.Debug().Msg("gtk initialized")
	return nil
}

func (d *Driver) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, d.Quit)
	defer stop()

	d.loop.Run()
	return ctx.Err()
}

func (d *Driver) Quit() {
	glib.IdleAdd(func() bool {
		if d.loop != nil {
			d.loop.Quit()
		}
		return false
	})
}

func (d *Driver) Post(fn func()) {
	if d.down.Load() {
		return
	}
	glib.IdleAdd(func() bool {
		if !d.down.Load() {
			fn()
		}
		return false
	})
}

func (d *Driver) NewWindow(cfg driver.WindowConfig, events driver.WindowEvents) (driver.NativeWindow, error) {
	if d.down.Load() {
		return nil, fmt.Errorf("webkitgtk: driver is shut down")
	}
	return newWindow(d, d.windows.Add(1), cfg, events)
}

// CreateWebView builds the WebKit view on the next main-loop iteration so
// the caller always observes the asynchronous contract.
func (d *Driver) CreateWebView(req driver.WebViewRequest, done func(driver.NativeWebView, error)) {
	glib.IdleAdd(func() bool {
		if d.down.Load() {
			return false
		}
		parent, ok := req.Parent.(*Window)
		if !ok || parent.destroyed {
			done(nil, fmt.Errorf("webkitgtk: parent window is not alive"))
			return false
		}
		wv, err := newWebView(d, parent, req)
		done(wv, err)
		return false
	})
}

func (d *Driver) Shutdown() {
	d.down.Store(true)
	if d.loop != nil && d.loop.IsRunning() {
		d.loop.Quit()
	}
	d.logger.Debug().Msg("gtk driver shut down")
}

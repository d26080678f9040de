package platform

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// Window owns one native top-level window. Geometry setters queue a request
// to the OS and return; getters report the live OS state, which may differ
// from what was requested.
type Window struct {
	loop   *Loop
	id     uint64
	native driver.NativeWindow
	logger zerolog.Logger

	borderless bool
	background core.Color4f
	onResize   func(core.Rect2u)
	onClose    func()
	destroyed  bool
}

// NewWindow creates a native window. It either returns a fully bound window
// or an error wrapping ErrBackendAllocation.
func NewWindow(loop *Loop, opts ...WindowOption) (*Window, error) {
	if loop == nil || loop.Closed() {
		return nil, &PreconditionError{Op: "NewWindow", State: "closed", Reason: "loop is not running"}
	}

	cfg := defaultWindowConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Window{
		loop:       loop,
		id:         loop.nextID(),
		borderless: cfg.borderless,
		background: cfg.background,
		onResize:   cfg.onResize,
		onClose:    cfg.onClose,
	}
	w.logger = loop.logger.With().Str("component", "window").Uint64("window_id", w.id).Logger()

	native, err := loop.drv.NewWindow(driver.WindowConfig{
		Title:      cfg.title,
		Size:       cfg.size,
		Position:   cfg.position,
		Borderless: cfg.borderless,
		Background: cfg.background,
	}, driver.WindowEvents{
		Resized: w.handleResized,
		Closed:  w.handleClosed,
	})
	if err != nil {
		return nil, allocationError("window", err)
	}
	if native == nil {
		return nil, allocationError("window", fmt.Errorf("%s driver returned no window", loop.drv.Name()))
	}
	w.native = native
	loop.trackWindow(w)

	w.logger.Debug().
		Str("title", cfg.title).
		Uint32("width", cfg.size.X).
		Uint32("height", cfg.size.Y).
		Bool("borderless", cfg.borderless).
		Msg("window created")
	return w, nil
}

// ID is unique per loop.
func (w *Window) ID() uint64 {
	return w.id
}

// Handle returns a non-owning reference usable to parent a web view.
func (w *Window) Handle() WindowHandle {
	if w.destroyed {
		return WindowHandle{}
	}
	return WindowHandle{native: w.native}
}

// SetResizeHandler replaces the resize handler given at construction.
func (w *Window) SetResizeHandler(fn func(size core.Rect2u)) {
	w.onResize = fn
}

func (w *Window) SetBorderless(borderless bool) {
	if w.destroyed || w.borderless == borderless {
		return
	}
	w.borderless = borderless
	w.native.SetBorderless(borderless)
}

func (w *Window) IsBorderless() bool {
	return w.borderless
}

func (w *Window) SetTitle(title string) {
	if w.destroyed {
		return
	}
	w.native.SetTitle(title)
}

func (w *Window) Title() string {
	if w.destroyed {
		return ""
	}
	return w.native.Title()
}

func (w *Window) SetSize(size core.Vec2u) {
	if w.destroyed {
		return
	}
	w.native.SetSize(size)
}

func (w *Window) Size() core.Vec2u {
	if w.destroyed {
		return core.Vec2u{}
	}
	return w.native.Size()
}

func (w *Window) SetPosition(pos core.Vec2i) {
	if w.destroyed {
		return
	}
	w.native.SetPosition(pos)
}

func (w *Window) Position() core.Vec2i {
	if w.destroyed {
		return core.Vec2i{}
	}
	return w.native.Position()
}

func (w *Window) SetBounds(bounds core.Rect2i) {
	if w.destroyed {
		return
	}
	w.native.SetBounds(bounds)
}

func (w *Window) Bounds() core.Rect2i {
	if w.destroyed {
		return core.Rect2i{}
	}
	return w.native.Bounds()
}

// InnerSize is the client area available to web views.
func (w *Window) InnerSize() core.Rect2u {
	if w.destroyed {
		return core.Rect2u{}
	}
	return w.native.InnerSize()
}

func (w *Window) IsMaximized() bool {
	return !w.destroyed && w.native.IsMaximized()
}

func (w *Window) IsMinimized() bool {
	return !w.destroyed && w.native.IsMinimized()
}

func (w *Window) RequestClose() {
	if w.destroyed {
		return
	}
	w.native.RequestClose()
}

func (w *Window) RequestToggleMaximize() {
	if w.destroyed {
		return
	}
	w.native.RequestToggleMaximize()
}

func (w *Window) RequestMinimize() {
	if w.destroyed {
		return
	}
	w.native.RequestMinimize()
}

// SetBackgroundColor sets the color used to clear the window surface.
// Embedded web views keep their own background.
func (w *Window) SetBackgroundColor(color core.Color4f) {
	w.background = color
	if !w.destroyed {
		w.native.SetBackgroundColor(color)
	}
}

func (w *Window) BackgroundColor() core.Color4f {
	return w.background
}

// Destroyed reports whether the native window is gone, either through
// Destroy or because the OS closed it.
func (w *Window) Destroyed() bool {
	return w.destroyed
}

// Destroy releases the native window. It is idempotent.
func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.release()
	w.native.Destroy()
	w.logger.Debug().Msg("window destroyed")
}

func (w *Window) release() {
	w.destroyed = true
	w.loop.resizes.Cancel(w.resizeKey())
	w.loop.untrackWindow(w)
}

func (w *Window) resizeKey() string {
	return fmt.Sprintf("resize:%d", w.id)
}

func (w *Window) handleResized(size core.Rect2u) {
	if w.destroyed {
		return
	}
	w.loop.resizes.Post(w.resizeKey(), func() {
		if w.destroyed || w.onResize == nil {
			return
		}
		w.onResize(size)
	})
}

func (w *Window) handleClosed() {
	if w.destroyed {
		return
	}
	w.release()
	w.logger.Debug().Msg("window closed by OS")
	if w.onClose != nil {
		w.onClose()
	}
}

// WindowHandle is a copyable, non-owning reference to a native window. It is
// only valid while the referenced window is alive.
type WindowHandle struct {
	native driver.NativeWindow
}

// HandleFromNative wraps a native window that was not created through
// NewWindow.
func HandleFromNative(native driver.NativeWindow) WindowHandle {
	return WindowHandle{native: native}
}

// IsZero reports an empty handle.
func (h WindowHandle) IsZero() bool {
	return h.native == nil
}

// Native exposes the backend window.
func (h WindowHandle) Native() driver.NativeWindow {
	return h.native
}

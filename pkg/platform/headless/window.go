package headless

import (
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// Window is a simulated top-level window. Setters take effect on the next
// loop iteration, clamped to the screen, the way a window manager would apply
// them.
type Window struct {
	d      *Driver
	events driver.WindowEvents

	title      string
	bounds     core.Rect2i
	restore    core.Rect2i
	borderless bool
	maximized  bool
	minimized  bool
	background core.Color4f
	destroyed  bool
}

var _ driver.NativeWindow = (*Window)(nil)

func (w *Window) SetBorderless(borderless bool) {
	w.d.Post(func() {
		if w.destroyed || w.borderless == borderless {
			return
		}
		w.borderless = borderless
		w.resized()
	})
}

// Borderless reports the applied decoration state.
func (w *Window) Borderless() bool {
	return w.borderless
}

func (w *Window) SetTitle(title string) {
	w.d.Post(func() {
		w.title = title
	})
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) SetSize(size core.Vec2u) {
	w.d.Post(func() {
		w.apply(core.Rect2i{Position: w.bounds.Position, Size: size})
	})
}

func (w *Window) Size() core.Vec2u {
	return w.bounds.Size
}

func (w *Window) SetPosition(pos core.Vec2i) {
	w.d.Post(func() {
		w.apply(core.Rect2i{Position: pos, Size: w.bounds.Size})
	})
}

func (w *Window) Position() core.Vec2i {
	return w.bounds.Position
}

func (w *Window) SetBounds(bounds core.Rect2i) {
	w.d.Post(func() {
		w.apply(bounds)
	})
}

func (w *Window) Bounds() core.Rect2i {
	return w.bounds
}

func (w *Window) InnerSize() core.Rect2u {
	size := w.bounds.Size
	if !w.borderless {
		size.Y = uint32(max(int64(size.Y)-TitleBarHeight, 0))
	}
	return core.Rect2u{Size: size}
}

func (w *Window) IsMaximized() bool {
	return w.maximized
}

func (w *Window) IsMinimized() bool {
	return w.minimized
}

func (w *Window) RequestClose() {
	w.d.Post(w.Close)
}

func (w *Window) RequestToggleMaximize() {
	w.d.Post(func() {
		if w.destroyed {
			return
		}
		if w.maximized {
			w.maximized = false
			w.apply(w.restore)
			return
		}
		w.restore = w.bounds
		w.maximized = true
		w.apply(w.d.screen)
	})
}

func (w *Window) RequestMinimize() {
	w.d.Post(func() {
		if !w.destroyed {
			w.minimized = true
		}
	})
}

func (w *Window) SetBackgroundColor(color core.Color4f) {
	w.background = color
}

// Background is the applied clear color.
func (w *Window) Background() core.Color4f {
	return w.background
}

func (w *Window) Destroy() {
	w.destroyed = true
}

// Alive reports whether the window has been neither destroyed nor closed.
func (w *Window) Alive() bool {
	return !w.destroyed
}

// Close simulates the user closing the window from its title bar.
func (w *Window) Close() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	if w.events.Closed != nil {
		w.events.Closed()
	}
}

// Resize simulates the user dragging the window edge. The new size is
// reported through the Resized event immediately.
func (w *Window) Resize(size core.Vec2u) {
	w.apply(core.Rect2i{Position: w.bounds.Position, Size: size})
}

func (w *Window) apply(bounds core.Rect2i) {
	if w.destroyed {
		return
	}
	next := bounds.Clamp(w.d.screen)
	if next == w.bounds {
		return
	}
	sizeChanged := next.Size != w.bounds.Size
	w.bounds = next
	if sizeChanged {
		w.resized()
	}
}

func (w *Window) resized() {
	if w.events.Resized != nil {
		w.events.Resized(w.InnerSize())
	}
}

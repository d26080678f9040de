//go:build webkit_cgo

package webkitgtk

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// Window is a GTK top-level window whose child is a gtk.Fixed holding the
// web views. GTK4 cannot place windows on Wayland, so the position is the
// last requested one.
type Window struct {
	d      *Driver
	win    *gtk.Window
	fixed  *gtk.Fixed
	css    *gtk.CSSProvider
	class  string
	events driver.WindowEvents

	position  core.Vec2i
	minimized bool
	destroyed bool
}

var _ driver.NativeWindow = (*Window)(nil)

func newWindow(d *Driver, id uint64, cfg driver.WindowConfig, events driver.WindowEvents) (*Window, error) {
	win := gtk.NewWindow()
	if win == nil {
		return nil, fmt.Errorf("webkitgtk: gtk_window_new returned NULL")
	}

	w := &Window{
		d:      d,
		win:    win,
		fixed:  gtk.NewFixed(),
		css:    gtk.NewCSSProvider(),
		class:  fmt.Sprintf("appplatform-window-%d", id),
		events: events,
	}
	if cfg.Position != nil {
		w.position = *cfg.Position
	}

	win.SetTitle(cfg.Title)
	win.SetDefaultSize(int(cfg.Size.X), int(cfg.Size.Y))
	win.SetDecorated(!cfg.Borderless)
	win.SetChild(w.fixed)
	win.AddCSSClass(w.class)
	gtk.StyleContextAddProviderForDisplay(gdk.DisplayGetDefault(), w.css, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
	w.SetBackgroundColor(cfg.Background)

	resized := func() {
		if !w.destroyed && w.events.Resized != nil {
			w.events.Resized(w.InnerSize())
		}
	}
	win.NotifyProperty("default-width", resized)
	win.NotifyProperty("default-height", resized)
	win.NotifyProperty("maximized", resized)
	win.ConnectCloseRequest(func() bool {
		if w.destroyed {
			return false
		}
		w.destroyed = true
		if w.events.Closed != nil {
			w.events.Closed()
		}
		return false
	})

	win.Present()
	return w, nil
}

func (w *Window) SetBorderless(borderless bool) {
	w.win.SetDecorated(!borderless)
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

func (w *Window) Title() string {
	return w.win.Title()
}

func (w *Window) SetSize(size core.Vec2u) {
	w.win.SetDefaultSize(int(size.X), int(size.Y))
}

func (w *Window) Size() core.Vec2u {
	width, height := w.win.DefaultSize()
	if w.win.Realized() {
		width, height = w.win.Width(), w.win.Height()
	}
	return core.Vec2u{X: uint32(max(width, 0)), Y: uint32(max(height, 0))}
}

func (w *Window) SetPosition(pos core.Vec2i) {
	w.position = pos
}

func (w *Window) Position() core.Vec2i {
	return w.position
}

func (w *Window) SetBounds(bounds core.Rect2i) {
	w.SetPosition(bounds.Position)
	w.SetSize(bounds.Size)
}

func (w *Window) Bounds() core.Rect2i {
	return core.Rect2i{Position: w.position, Size: w.Size()}
}

func (w *Window) InnerSize() core.Rect2u {
	width, height := w.fixed.Width(), w.fixed.Height()
	if width == 0 && height == 0 {
		return core.Rect2u{Size: w.Size()}
	}
	return core.Rect2u{Size: core.Vec2u{X: uint32(width), Y: uint32(height)}}
}

func (w *Window) IsMaximized() bool {
	return w.win.IsMaximized()
}

func (w *Window) IsMinimized() bool {
	if tl, ok := w.win.Surface().(gdk.Topleveller); ok {
		return tl.State()&gdk.ToplevelStateMinimized != 0
	}
	// Not realized yet: only a pending minimize request can apply.
	return w.minimized
}

func (w *Window) RequestClose() {
	w.win.Close()
}

func (w *Window) RequestToggleMaximize() {
	if w.win.IsMaximized() {
		w.win.Unmaximize()
		return
	}
	w.win.Maximize()
}

func (w *Window) RequestMinimize() {
	w.minimized = true
	w.win.Minimize()
}

func (w *Window) SetBackgroundColor(color core.Color4f) {
	w.css.LoadFromData(windowCSS(w.class, color))
}

func (w *Window) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	gtk.StyleContextRemoveProviderForDisplay(gdk.DisplayGetDefault(), w.css)
	w.win.Destroy()
}

//go:build webkit_cgo

package webkitgtk

import (
	"context"
	"fmt"
	"slices"

	javascriptcore "github.com/diamondburned/gotk4-webkitgtk/pkg/javascriptcore/v6"
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// WebView is a WebKitGTK view placed in its window's gtk.Fixed.
type WebView struct {
	d      *Driver
	parent *Window
	view   *webkit.WebView
	events driver.WebViewEvents

	accelerators []driver.AcceleratorKey
	repeat       repeatTracker
	background   core.Color4f
	transparent  bool
}

var _ driver.NativeWebView = (*WebView)(nil)

func newWebView(d *Driver, parent *Window, req driver.WebViewRequest) (*WebView, error) {
	view := webkit.NewWebView()
	if view == nil {
		return nil, fmt.Errorf("webkitgtk: webkit_web_view_new returned NULL")
	}

	wv := &WebView{
		d:            d,
		parent:       parent,
		view:         view,
		events:       req.Events,
		accelerators: slices.Clone(req.Settings.Accelerators),
		background:   core.Color4f{R: 1, G: 1, B: 1, A: 1},
		transparent:  req.Settings.TransparentBackground,
	}

	settings := view.Settings()
	settings.SetEnableDeveloperExtras(req.Settings.DeveloperExtras)
	if req.Settings.UserAgent != "" {
		settings.SetUserAgent(req.Settings.UserAgent)
	}
	if req.Settings.DraggableRegions || req.Settings.ElasticOverscroll {
		d.logger.Debug().
			Bool("draggable_regions", req.Settings.DraggableRegions).
			Bool("elastic_overscroll", req.Settings.ElasticOverscroll).
			Msg("setting has no WebKitGTK equivalent, ignored")
	}
	if req.Settings.BackgroundColor != nil {
		wv.background = *req.Settings.BackgroundColor
	}
	wv.applyBackground()

	ucm := view.UserContentManager()
	ucm.AddScript(webkit.NewUserScript(
		bridgeScript,
		webkit.UserContentInjectTopFrame,
		webkit.UserScriptInjectAtDocumentStart,
		nil,
		nil,
	))
	if !ucm.RegisterScriptMessageHandler(MessageHandlerName, "") {
		return nil, fmt.Errorf("webkitgtk: register %q script message handler", MessageHandlerName)
	}
	ucm.ConnectScriptMessageReceived(func(value *javascriptcore.Value) {
		if wv.events.Message != nil {
			wv.events.Message(value.String())
		}
	})

	view.ConnectPermissionRequest(func(request webkit.PermissionRequester) bool {
		if wv.events.PermissionRequest == nil {
			return false
		}
		wv.events.PermissionRequest(newPrompt(request, view.URI()))
		return true
	})

	keys := gtk.NewEventControllerKey()
	keys.SetPropagationPhase(gtk.PhaseCapture)
	keys.ConnectKeyPressed(wv.keyPressed)
	keys.ConnectKeyReleased(func(keyval, _ uint, _ gdk.ModifierType) {
		wv.repeat.release(keyval)
	})
	view.AddController(keys)

	inner := parent.InnerSize().Size
	view.SetSizeRequest(int(inner.X), int(inner.Y))
	parent.fixed.Put(view, 0, 0)
	return wv, nil
}

// keyPressed runs in the capture phase, before WebKit sees the event.
func (wv *WebView) keyPressed(keyval, _ uint, state gdk.ModifierType) bool {
	code, ok := keyCodeFromKeyval(keyval)
	if !ok {
		return false
	}
	key := driver.AcceleratorKey{
		KeyCode:     code,
		Ctrl:        state.Has(gdk.ControlMask),
		Shift:       state.Has(gdk.ShiftMask),
		Alt:         state.Has(gdk.AltMask),
		RepeatCount: wv.repeat.press(keyval),
	}
	if !slices.ContainsFunc(wv.accelerators, key.Matches) {
		return false
	}
	if wv.events.AcceleratorKey != nil {
		wv.events.AcceleratorKey(key)
	}
	return true
}

func (wv *WebView) SetBounds(bounds core.Rect2i) {
	wv.parent.fixed.Move(wv.view, float64(bounds.Position.X), float64(bounds.Position.Y))
	wv.view.SetSizeRequest(int(bounds.Size.X), int(bounds.Size.Y))
}

func (wv *WebView) SetBackgroundColor(color core.Color4f) {
	wv.background = color
	wv.applyBackground()
}

func (wv *WebView) SetTransparentBackground(enabled bool) {
	wv.transparent = enabled
	wv.applyBackground()
}

func (wv *WebView) applyBackground() {
	c := wv.background
	if wv.transparent {
		c.A = 0
	}
	rgba := gdk.NewRGBA(c.R, c.G, c.B, c.A)
	wv.view.SetBackgroundColor(&rgba)
}

func (wv *WebView) Focus(reason driver.FocusReason) {
	switch reason {
	case driver.FocusTabNext:
		wv.view.ChildFocus(gtk.DirTabForward)
	case driver.FocusTabPrev:
		wv.view.ChildFocus(gtk.DirTabBackward)
	default:
		wv.view.GrabFocus()
	}
}

func (wv *WebView) SetParent(parent driver.NativeWindow) error {
	next, ok := parent.(*Window)
	if !ok || next.destroyed {
		return fmt.Errorf("webkitgtk: parent window is not alive")
	}
	if next == wv.parent {
		return nil
	}
	wv.parent.fixed.Remove(wv.view)
	next.fixed.Put(wv.view, 0, 0)
	wv.parent = next
	return nil
}

func (wv *WebView) Navigate(url string) {
	wv.view.LoadURI(url)
}

func (wv *WebView) PostMessage(text string) {
	wv.view.EvaluateJavascript(context.Background(), dispatchScript(text), -1, "", "", nil)
}

func (wv *WebView) SetAccelerators(keys []driver.AcceleratorKey) {
	wv.accelerators = slices.Clone(keys)
}

func (wv *WebView) Destroy() {
	if wv.view == nil {
		return
	}
	wv.view.UserContentManager().UnregisterScriptMessageHandler(MessageHandlerName, "")
	if !wv.parent.destroyed {
		wv.parent.fixed.Remove(wv.view)
	}
	wv.view = nil
}

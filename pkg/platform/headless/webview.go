package headless

import (
	"slices"

	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// WebView is a simulated browser surface. Navigation loads the script
// registered for the URL with WithContent and runs it as hosted content.
type WebView struct {
	d        *Driver
	parent   *Window
	settings driver.WebViewSettings
	events   driver.WebViewEvents

	bounds       core.Rect2i
	background   core.Color4f
	transparent  bool
	focused      bool
	focusReason  driver.FocusReason
	accelerators []driver.AcceleratorKey

	url       string
	history   []string
	inbox     []string
	typed     []driver.AcceleratorKey
	content   *content
	scriptErr error
	destroyed bool
}

var _ driver.NativeWebView = (*WebView)(nil)

func (wv *WebView) SetBounds(bounds core.Rect2i) {
	wv.bounds = bounds
}

func (wv *WebView) SetBackgroundColor(color core.Color4f) {
	wv.background = color
}

func (wv *WebView) SetTransparentBackground(enabled bool) {
	wv.transparent = enabled
}

func (wv *WebView) Focus(reason driver.FocusReason) {
	wv.focused = true
	wv.focusReason = reason
}

func (wv *WebView) SetParent(parent driver.NativeWindow) error {
	w, ok := parent.(*Window)
	if !ok || w.destroyed {
		return errParentGone
	}
	wv.parent = w
	return nil
}

func (wv *WebView) Navigate(url string) {
	wv.d.Post(func() {
		if wv.destroyed {
			return
		}
		wv.url = url
		wv.history = append(wv.history, url)
		wv.content = nil
		wv.scriptErr = nil

		script, ok := wv.d.pages[url]
		if !ok {
			return
		}
		c, err := loadContent(wv, script)
		if err != nil {
			wv.scriptErr = err
			wv.d.logger.Warn().Err(err).Str("url", url).Msg("hosted content failed to load")
			return
		}
		wv.content = c
	})
}

func (wv *WebView) PostMessage(text string) {
	wv.d.Post(func() {
		if wv.destroyed {
			return
		}
		wv.inbox = append(wv.inbox, text)
		if wv.content == nil {
			return
		}
		if err := wv.content.deliver(text); err != nil {
			wv.scriptErr = err
			wv.d.logger.Warn().Err(err).Msg("hosted content onmessage failed")
		}
	})
}

func (wv *WebView) SetAccelerators(keys []driver.AcceleratorKey) {
	wv.accelerators = slices.Clone(keys)
}

func (wv *WebView) Destroy() {
	wv.destroyed = true
	wv.content = nil
}

// EmitMessage simulates hosted content posting text to the host.
func (wv *WebView) EmitMessage(text string) {
	wv.d.Post(func() {
		if wv.destroyed || wv.events.Message == nil {
			return
		}
		wv.events.Message(text)
	})
}

// PressKey simulates a key press. Registered chords go to the
// AcceleratorKey event and never reach content.
func (wv *WebView) PressKey(key driver.AcceleratorKey) {
	wv.d.Post(func() {
		if wv.destroyed {
			return
		}
		if slices.ContainsFunc(wv.accelerators, key.Matches) {
			if wv.events.AcceleratorKey != nil {
				wv.events.AcceleratorKey(key)
			}
			return
		}
		wv.typed = append(wv.typed, key)
	})
}

// RequestPermission simulates content asking for a capability. The
// returned prompt records how it was completed.
func (wv *WebView) RequestPermission(kind driver.PermissionKind, userInitiated bool) *Prompt {
	p := NewPrompt(kind, wv.url, userInitiated)
	wv.raise(p)
	return p
}

func (wv *WebView) raise(p *Prompt) {
	wv.d.Post(func() {
		if wv.destroyed || wv.events.PermissionRequest == nil {
			p.Complete(driver.ResponseDeny, false)
			return
		}
		wv.events.PermissionRequest(p)
	})
}

func (wv *WebView) Parent() *Window                     { return wv.parent }
func (wv *WebView) Settings() driver.WebViewSettings    { return wv.settings }
func (wv *WebView) Bounds() core.Rect2i                 { return wv.bounds }
func (wv *WebView) Background() core.Color4f            { return wv.background }
func (wv *WebView) Transparent() bool                   { return wv.transparent }
func (wv *WebView) Focused() (bool, driver.FocusReason) { return wv.focused, wv.focusReason }
func (wv *WebView) URL() string                         { return wv.url }
func (wv *WebView) Destroyed() bool                     { return wv.destroyed }

// ScriptError is the last error raised by hosted content, if any.
func (wv *WebView) ScriptError() error { return wv.scriptErr }

// History lists every URL navigated to, oldest first.
func (wv *WebView) History() []string {
	return slices.Clone(wv.history)
}

// Inbox lists the messages delivered to content, oldest first.
func (wv *WebView) Inbox() []string {
	return slices.Clone(wv.inbox)
}

// TypedKeys lists key presses routed to content.
func (wv *WebView) TypedKeys() []driver.AcceleratorKey {
	return slices.Clone(wv.typed)
}

// Accelerators lists the chords the host registered.
func (wv *WebView) Accelerators() []driver.AcceleratorKey {
	return slices.Clone(wv.accelerators)
}

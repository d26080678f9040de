package platform

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// WebViewState is the lifecycle position of a WebView.
type WebViewState int

const (
	// StateConstructed owns no native resources.
	StateConstructed WebViewState = iota
	// StateSettingUp has native allocation in flight.
	StateSettingUp
	// StateReady has a usable native surface.
	StateReady
	// StateFailed means native allocation failed. OnSetupFailed was called.
	StateFailed
	// StateDestroyed has released its native resources.
	StateDestroyed
	// StateMoved is the inert source of a Move.
	StateMoved
)

func (s WebViewState) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateSettingUp:
		return "setting_up"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDestroyed:
		return "destroyed"
	case StateMoved:
		return "moved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// WebView owns an embedded browser surface bound to a window.
//
// A WebView starts Constructed. BeginSetup asks the backend for a native
// surface and returns at once; the loop later calls OnReady (or
// OnSetupFailed) exactly once. Navigation, messaging and appearance
// operations are only legal once Ready and fail with ErrPreconditionViolation
// before that.
//
// The callback fields may be assigned at any time from the UI thread. They
// are invoked on the UI thread, one at a time, in the order the backend
// delivers the underlying events.
type WebView struct {
	OnReady             func()
	OnSetupFailed       func(err error)
	OnMessage           func(text string)
	OnAcceleratorKey    func(key AcceleratorKey)
	OnPermissionRequest func(req *PermissionRequest)

	loop   *Loop
	id     uint64
	logger zerolog.Logger

	state        WebViewState
	native       driver.NativeWebView
	token        *setupToken
	accelerators []AcceleratorKey
	permissions  []*PermissionRequest
}

// setupToken routes backend completions and events to the WebView that
// currently owns the native surface. Destroy cancels it; Move re-points it.
type setupToken struct {
	owner     *WebView
	cancelled bool
}

func (t *setupToken) cancel() {
	t.cancelled = true
}

// NewWebView returns a Constructed web view bound to loop.
func NewWebView(loop *Loop) *WebView {
	wv := &WebView{loop: loop, id: loop.nextID()}
	wv.logger = loop.logger.With().Str("component", "webview").Uint64("webview_id", wv.id).Logger()
	return wv
}

// ID is unique per loop and survives Move.
func (wv *WebView) ID() uint64 {
	return wv.id
}

func (wv *WebView) State() WebViewState {
	return wv.state
}

// SetupFinished reports whether the web view is Ready.
func (wv *WebView) SetupFinished() bool {
	return wv.state == StateReady
}

// BeginSetupWindow is BeginSetup targeting w.
func (wv *WebView) BeginSetupWindow(w *Window, settings WebViewSettings) error {
	if w == nil || w.Destroyed() {
		return wv.violation("WebView.BeginSetup", "target window is destroyed")
	}
	return wv.BeginSetup(w.Handle(), settings)
}

// BeginSetup starts allocating the native surface inside target. It returns
// immediately. It is legal once, from the Constructed state.
func (wv *WebView) BeginSetup(target WindowHandle, settings WebViewSettings) error {
	const op = "WebView.BeginSetup"

	switch wv.state {
	case StateConstructed:
	case StateSettingUp:
		return wv.violation(op, "setup already in flight")
	default:
		return wv.violation(op, "setup already ran")
	}
	if target.IsZero() {
		return wv.violation(op, "no target window")
	}
	if wv.loop.Closed() {
		return wv.violation(op, "loop is closed")
	}

	token := &setupToken{owner: wv}
	wv.token = token
	wv.state = StateSettingUp
	wv.loop.trackSetup(token)
	wv.loop.trackWebView(wv)

	wv.logger.Debug().
		Bool("transparent", settings.TransparentBackground).
		Bool("devtools", settings.DeveloperExtras).
		Int("accelerators", len(wv.accelerators)).
		Msg("webview setup started")

	wv.loop.drv.CreateWebView(driver.WebViewRequest{
		Parent:   target.native,
		Settings: settings.toDriver(wv.accelerators),
		Events: driver.WebViewEvents{
			Message:           token.message,
			AcceleratorKey:    token.acceleratorKey,
			PermissionRequest: token.permissionRequest,
		},
	}, token.done)
	return nil
}

func (t *setupToken) done(native driver.NativeWebView, err error) {
	wv := t.owner
	if wv != nil {
		wv.loop.untrackSetup(t)
	}
	if t.cancelled || wv == nil || wv.state != StateSettingUp {
		if native != nil {
			native.Destroy()
		}
		return
	}

	if err == nil && native == nil {
		err = fmt.Errorf("%s driver returned no web view", wv.loop.drv.Name())
	}
	if err != nil {
		wv.state = StateFailed
		wv.loop.untrackWebView(wv)
		err = allocationError("webview", err)
		wv.logger.Warn().Err(err).Msg("webview setup failed")
		if wv.OnSetupFailed != nil {
			wv.OnSetupFailed(err)
		}
		return
	}

	wv.native = native
	wv.state = StateReady
	if len(wv.accelerators) > 0 {
		native.SetAccelerators(slices.Clone(wv.accelerators))
	}
	wv.logger.Debug().Msg("webview ready")
	if wv.OnReady != nil {
		wv.OnReady()
	}
}

// live returns the owner when events may be delivered to it.
func (t *setupToken) live() *WebView {
	if t.cancelled || t.owner == nil || t.owner.state != StateReady {
		return nil
	}
	return t.owner
}

func (t *setupToken) message(text string) {
	wv := t.live()
	if wv == nil || wv.OnMessage == nil {
		return
	}
	wv.OnMessage(text)
}

func (t *setupToken) acceleratorKey(key AcceleratorKey) {
	wv := t.live()
	if wv == nil || wv.OnAcceleratorKey == nil || !wv.isRegistered(key) {
		return
	}
	wv.OnAcceleratorKey(key)
}

func (t *setupToken) permissionRequest(prompt driver.PermissionPrompt) {
	wv := t.live()
	if wv == nil {
		prompt.Complete(ResponseDeny, false)
		return
	}

	req := NewPermissionRequest(prompt)
	req.strict = wv.loop.strict
	req.logger = wv.logger
	if wv.OnPermissionRequest == nil {
		req.deny()
		return
	}

	wv.permissions = slices.DeleteFunc(wv.permissions, (*PermissionRequest).Completed)
	wv.permissions = append(wv.permissions, req)
	wv.logger.Debug().
		Str("kind", req.Kind().String()).
		Str("origin", req.Origin()).
		Msg("permission requested")
	wv.OnPermissionRequest(req)
}

// RegisterAccelerator adds a chord such as "ctrl+shift+i" to the set that
// fires OnAcceleratorKey ahead of content input. Legal until Destroy.
func (wv *WebView) RegisterAccelerator(chord string) error {
	key, err := ParseAccelerator(chord)
	if err != nil {
		return err
	}
	return wv.RegisterAcceleratorKey(key)
}

// RegisterAcceleratorKey is RegisterAccelerator for a parsed chord.
func (wv *WebView) RegisterAcceleratorKey(key AcceleratorKey) error {
	if wv.state == StateDestroyed || wv.state == StateMoved {
		return wv.violation("WebView.RegisterAccelerator", "")
	}
	if wv.isRegistered(key) {
		return nil
	}
	key.RepeatCount = 0
	wv.accelerators = append(wv.accelerators, key)
	if wv.state == StateReady {
		wv.native.SetAccelerators(slices.Clone(wv.accelerators))
	}
	return nil
}

// UnregisterAcceleratorKey removes a chord so it reaches content again.
// Removing a chord that is not registered is a no-op.
func (wv *WebView) UnregisterAcceleratorKey(key AcceleratorKey) error {
	if wv.state == StateDestroyed || wv.state == StateMoved {
		return wv.violation("WebView.UnregisterAccelerator", "")
	}
	if !wv.isRegistered(key) {
		return nil
	}
	wv.accelerators = slices.DeleteFunc(wv.accelerators, key.Matches)
	wv.pushAccelerators()
	return nil
}

// SetAcceleratorKeys replaces the registered chords with keys. Duplicates
// are dropped.
func (wv *WebView) SetAcceleratorKeys(keys []AcceleratorKey) error {
	if wv.state == StateDestroyed || wv.state == StateMoved {
		return wv.violation("WebView.SetAccelerators", "")
	}
	next := make([]AcceleratorKey, 0, len(keys))
	for _, key := range keys {
		key.RepeatCount = 0
		if !slices.ContainsFunc(next, key.Matches) {
			next = append(next, key)
		}
	}
	wv.accelerators = next
	wv.pushAccelerators()
	return nil
}

func (wv *WebView) pushAccelerators() {
	if wv.state == StateReady {
		wv.native.SetAccelerators(slices.Clone(wv.accelerators))
	}
}

// Accelerators returns the registered chords.
func (wv *WebView) Accelerators() []AcceleratorKey {
	return slices.Clone(wv.accelerators)
}

func (wv *WebView) isRegistered(key AcceleratorKey) bool {
	return slices.ContainsFunc(wv.accelerators, key.Matches)
}

func (wv *WebView) SetBounds(bounds core.Rect2i) error {
	if err := wv.requireReady("WebView.SetBounds"); err != nil {
		return err
	}
	wv.native.SetBounds(bounds)
	return nil
}

// SetBackgroundColor sets the color painted behind content.
func (wv *WebView) SetBackgroundColor(color core.Color4f) error {
	if err := wv.requireReady("WebView.SetBackgroundColor"); err != nil {
		return err
	}
	wv.native.SetBackgroundColor(color)
	return nil
}

func (wv *WebView) SetTransparentBackground(enabled bool) error {
	if err := wv.requireReady("WebView.SetTransparentBackground"); err != nil {
		return err
	}
	wv.native.SetTransparentBackground(enabled)
	return nil
}

func (wv *WebView) Focus(reason FocusReason) error {
	if err := wv.requireReady("WebView.Focus"); err != nil {
		return err
	}
	wv.native.Focus(reason)
	return nil
}

// SetParentWindow moves the native surface into another window.
func (wv *WebView) SetParentWindow(parent WindowHandle) error {
	const op = "WebView.SetParentWindow"
	if err := wv.requireReady(op); err != nil {
		return err
	}
	if parent.IsZero() {
		return wv.violation(op, "no target window")
	}
	if err := wv.native.SetParent(parent.native); err != nil {
		return fmt.Errorf("reparent webview: %w", err)
	}
	return nil
}

// Navigate loads url.
func (wv *WebView) Navigate(url string) error {
	return wv.navigate("WebView.Navigate", url)
}

// NavigateUTF8 is Navigate for a URL held as UTF-8 bytes.
func (wv *WebView) NavigateUTF8(url []byte) error {
	return wv.navigate("WebView.NavigateUTF8", string(url))
}

// NavigateUTF16 is Navigate for a URL held as UTF-16 code units. Backends
// with a wide native string type take it without transcoding.
func (wv *WebView) NavigateUTF16(url []uint16) error {
	const op = "WebView.NavigateUTF16"
	if err := wv.requireReady(op); err != nil {
		return err
	}
	if wide, ok := wv.native.(driver.WideNavigator); ok {
		if err := checkUTF16("navigate url", url); err != nil {
			return err
		}
		wide.NavigateUTF16(url)
		return nil
	}
	s, err := utf16ToString("navigate url", url)
	if err != nil {
		return err
	}
	wv.native.Navigate(s)
	return nil
}

func (wv *WebView) navigate(op, url string) error {
	if err := wv.requireReady(op); err != nil {
		return err
	}
	if err := checkUTF8("navigate url", url); err != nil {
		return err
	}
	wv.logger.Debug().Str("url", url).Msg("navigate")
	wv.native.Navigate(url)
	return nil
}

// SendMessage posts a JSON document to hosted content. Payloads that are not
// a single valid JSON value fail with ErrInvalidEncoding.
func (wv *WebView) SendMessage(payload string) error {
	if err := wv.requireReady("WebView.SendMessage"); err != nil {
		return err
	}
	if err := checkJSON("message", payload); err != nil {
		return err
	}
	wv.native.PostMessage(payload)
	return nil
}

// SendMessageJSON marshals v and posts it.
func (wv *WebView) SendMessageJSON(v any) error {
	if err := wv.requireReady("WebView.SendMessageJSON"); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return encodingError("message", err)
	}
	wv.native.PostMessage(string(data))
	return nil
}

// SendMessageStr posts arbitrary text to hosted content.
func (wv *WebView) SendMessageStr(text string) error {
	return wv.sendText("WebView.SendMessageStr", text)
}

// SendMessageStrUTF8 is SendMessageStr for UTF-8 bytes.
func (wv *WebView) SendMessageStrUTF8(text []byte) error {
	return wv.sendText("WebView.SendMessageStrUTF8", string(text))
}

// SendMessageStrUTF16 is SendMessageStr for UTF-16 code units.
func (wv *WebView) SendMessageStrUTF16(text []uint16) error {
	const op = "WebView.SendMessageStrUTF16"
	if err := wv.requireReady(op); err != nil {
		return err
	}
	if wide, ok := wv.native.(driver.WideNavigator); ok {
		if err := checkUTF16("message", text); err != nil {
			return err
		}
		wide.PostMessageUTF16(text)
		return nil
	}
	s, err := utf16ToString("message", text)
	if err != nil {
		return err
	}
	wv.native.PostMessage(s)
	return nil
}

func (wv *WebView) sendText(op, text string) error {
	if err := wv.requireReady(op); err != nil {
		return err
	}
	if err := checkUTF8("message", text); err != nil {
		return err
	}
	wv.native.PostMessage(text)
	return nil
}

// Move transfers the web view to a new value and leaves wv inert. Moving is
// rejected while setup is in flight.
func (wv *WebView) Move() (*WebView, error) {
	const op = "WebView.Move"
	switch wv.state {
	case StateSettingUp:
		return nil, wv.violation(op, "setup in flight")
	case StateMoved, StateDestroyed:
		return nil, wv.violation(op, "")
	}

	dst := &WebView{
		OnReady:             wv.OnReady,
		OnSetupFailed:       wv.OnSetupFailed,
		OnMessage:           wv.OnMessage,
		OnAcceleratorKey:    wv.OnAcceleratorKey,
		OnPermissionRequest: wv.OnPermissionRequest,
		loop:                wv.loop,
		id:                  wv.id,
		logger:              wv.logger,
		state:               wv.state,
		native:              wv.native,
		token:               wv.token,
		accelerators:        wv.accelerators,
		permissions:         wv.permissions,
	}
	if dst.token != nil {
		dst.token.owner = dst
	}
	if dst.state == StateReady {
		wv.loop.trackWebView(dst)
	}

	*wv = WebView{loop: wv.loop, id: wv.id, logger: wv.logger, state: StateMoved}
	return dst, nil
}

// Destroy releases the native surface. It is legal in every state and
// idempotent. An in-flight setup is cancelled: its completion never reaches
// OnReady or OnSetupFailed. Permission requests still pending are denied.
func (wv *WebView) Destroy() {
	if wv.state == StateDestroyed || wv.state == StateMoved {
		return
	}
	prev := wv.state
	wv.state = StateDestroyed

	if wv.token != nil {
		wv.token.cancel()
	}
	for _, req := range wv.permissions {
		req.deny()
	}
	wv.permissions = nil
	if wv.native != nil {
		wv.native.Destroy()
		wv.native = nil
	}
	wv.loop.untrackWebView(wv)

	wv.logger.Debug().Str("from", prev.String()).Msg("webview destroyed")
}

func (wv *WebView) requireReady(op string) error {
	if wv.state == StateReady {
		return nil
	}
	return wv.violation(op, "web view is not ready")
}

func (wv *WebView) violation(op, reason string) error {
	return wv.loop.violation(&PreconditionError{Op: op, State: wv.state.String(), Reason: reason})
}

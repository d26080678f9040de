// Package driver defines the contract a native backend implements for the
// platform package. One implementation exists per target platform and the host
// selects it at build time.
//
// Every method is called on the UI thread, and every callback a driver invokes
// must run on that same thread. Drivers do no locking on behalf of callers.
package driver

import (
	"context"
	"errors"

	"github.com/ubytes/appplatform/pkg/core"
)

// ErrUnavailable is returned when a backend is not compiled into the binary
// or cannot attach to the host's display.
var ErrUnavailable = errors.New("driver: backend unavailable")

// Driver owns the native event loop and allocates native objects.
type Driver interface {
	// Name identifies the backend in logs.
	Name() string

	// Init attaches to the OS message loop. It must be called from the thread
	// that will later call Run.
	Init(ctx context.Context) error

	// Run blocks, dispatching native events, until Quit is called or ctx ends.
	Run(ctx context.Context) error

	// Quit asks Run to return. Safe to call from any goroutine.
	Quit()

	// Post schedules fn on the UI thread. Safe to call from any goroutine.
	// Posted functions run in FIFO order.
	Post(fn func())

	// NewWindow synchronously creates a native top-level window.
	NewWindow(cfg WindowConfig, events WindowEvents) (NativeWindow, error)

	// CreateWebView starts allocating a web view. It returns immediately; done
	// is invoked exactly once, later, on the UI thread, with either a usable
	// web view or an error.
	CreateWebView(req WebViewRequest, done func(NativeWebView, error))

	// Shutdown releases process-wide native state. Pending posted functions are
	// dropped.
	Shutdown()
}

// WindowConfig is the initial state of a native window.
type WindowConfig struct {
	Title      string
	Size       core.Vec2u
	Position   *core.Vec2i
	Borderless bool
	Background core.Color4f
}

// WindowEvents are the notifications a native window raises.
type WindowEvents struct {
	// Resized reports the new client size.
	Resized func(size core.Rect2u)
	// Closed reports that the OS closed the window.
	Closed func()
}

// NativeWindow is a live native top-level window.
type NativeWindow interface {
	SetBorderless(borderless bool)
	SetTitle(title string)
	Title() string
	SetSize(size core.Vec2u)
	Size() core.Vec2u
	SetPosition(pos core.Vec2i)
	Position() core.Vec2i
	SetBounds(bounds core.Rect2i)
	Bounds() core.Rect2i
	InnerSize() core.Rect2u
	IsMaximized() bool
	IsMinimized() bool
	RequestClose()
	RequestToggleMaximize()
	RequestMinimize()
	SetBackgroundColor(color core.Color4f)
	Destroy()
}

// WebViewRequest describes a web view to allocate.
type WebViewRequest struct {
	Parent   NativeWindow
	Settings WebViewSettings
	Events   WebViewEvents
}

// WebViewSettings are the feature toggles consumed once at setup.
type WebViewSettings struct {
	ElasticOverscroll     bool
	DraggableRegions      bool
	DeveloperExtras       bool
	TransparentBackground bool
	UserAgent             string
	BackgroundColor       *core.Color4f
	Accelerators          []AcceleratorKey
}

// WebViewEvents are the notifications a native web view raises.
type WebViewEvents struct {
	Message           func(text string)
	AcceleratorKey    func(key AcceleratorKey)
	PermissionRequest func(req PermissionPrompt)
}

// FocusReason tells the web view why it receives focus.
type FocusReason int

const (
	FocusProgrammatic FocusReason = iota
	FocusTabNext
	FocusTabPrev
)

// NativeWebView is a live embedded browser surface.
type NativeWebView interface {
	SetBounds(bounds core.Rect2i)
	SetBackgroundColor(color core.Color4f)
	SetTransparentBackground(enabled bool)
	Focus(reason FocusReason)
	SetParent(parent NativeWindow) error
	// Navigate loads a UTF-8 URL.
	Navigate(url string)
	// PostMessage delivers text to hosted content.
	PostMessage(text string)
	// SetAccelerators replaces the chords intercepted before content input.
	SetAccelerators(keys []AcceleratorKey)
	Destroy()
}

// WideNavigator is implemented by web views whose native string type is
// UTF-16. The platform package calls it directly instead of transcoding.
type WideNavigator interface {
	NavigateUTF16(url []uint16)
	PostMessageUTF16(text []uint16)
}

// PermissionPrompt is a pending capability prompt held by the native layer.
type PermissionPrompt interface {
	Kind() PermissionKind
	URL() string
	UserInitiated() bool
	// Complete resolves the prompt. Called exactly once.
	Complete(response PermissionResponse, saveInProfile bool)
}

package platform

import "github.com/ubytes/appplatform/pkg/core"

// DefaultWindowSize is used when no WithSize option is given.
var DefaultWindowSize = core.Vec2u{X: 1024, Y: 768}

// WindowOption configures NewWindow.
type WindowOption func(*windowConfig)

type windowConfig struct {
	title      string
	size       core.Vec2u
	position   *core.Vec2i
	borderless bool
	background core.Color4f
	onResize   func(core.Rect2u)
	onClose    func()
}

func defaultWindowConfig() windowConfig {
	return windowConfig{
		size:       DefaultWindowSize,
		background: core.Color4f{R: 1, G: 1, B: 1, A: 1},
	}
}

func WithTitle(title string) WindowOption {
	return func(c *windowConfig) {
		c.title = title
	}
}

func WithSize(width, height uint32) WindowOption {
	return func(c *windowConfig) {
		c.size = core.Vec2u{X: width, Y: height}
	}
}

// WithPosition places the window. Without it the window manager decides.
func WithPosition(x, y int32) WindowOption {
	return func(c *windowConfig) {
		c.position = &core.Vec2i{X: x, Y: y}
	}
}

func WithBorderless(borderless bool) WindowOption {
	return func(c *windowConfig) {
		c.borderless = borderless
	}
}

func WithBackgroundColor(color core.Color4f) WindowOption {
	return func(c *windowConfig) {
		c.background = color
	}
}

// WithResizeHandler is called on the UI thread with the new client size each
// time the OS reports a dimension change. Bursts are coalesced.
func WithResizeHandler(fn func(size core.Rect2u)) WindowOption {
	return func(c *windowConfig) {
		c.onResize = fn
	}
}

// WithCloseHandler is called once when the OS closes the window.
func WithCloseHandler(fn func()) WindowOption {
	return func(c *windowConfig) {
		c.onClose = fn
	}
}

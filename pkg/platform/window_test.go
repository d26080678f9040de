package platform_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform"
	"github.com/ubytes/appplatform/pkg/platform/headless"
)

func TestNewWindowDefaults(t *testing.T) {
	loop, _ := newTestLoop(t)
	w := newTestWindow(t, loop, platform.WithTitle("Main"))

	assert.Equal(t, "Main", w.Title())
	assert.Equal(t, platform.DefaultWindowSize, w.Size())
	assert.Equal(t, core.Vec2i{X: 448, Y: 156}, w.Position(), "centered on the default screen")
	assert.False(t, w.IsBorderless())
	assert.False(t, w.IsMaximized())
	assert.False(t, w.Handle().IsZero())
	assert.Equal(t, core.Vec2u{X: 1024, Y: 768 - headless.TitleBarHeight}, w.InnerSize().Size)
}

func TestNewWindowAllocationFailure(t *testing.T) {
	loop, drv := newTestLoop(t)
	drv.FailNextWindow(errors.New("display gone"))

	w, err := platform.NewWindow(loop)
	assert.Nil(t, w)
	require.ErrorIs(t, err, platform.ErrBackendAllocation)
	assert.Contains(t, err.Error(), "display gone")

	_, err = platform.NewWindow(loop)
	assert.NoError(t, err)
}

func TestNewWindowAfterCloseIsRejected(t *testing.T) {
	loop, _ := newTestLoop(t)
	loop.Close()

	_, err := platform.NewWindow(loop)
	assert.ErrorIs(t, err, platform.ErrPreconditionViolation)
}

func TestGeometrySettersAreAsynchronousAndClamped(t *testing.T) {
	loop, drv := newTestLoop(t, headless.WithScreen(core.NewRect2i(0, 0, 800, 600)))
	w := newTestWindow(t, loop, platform.WithSize(400, 300), platform.WithPosition(10, 10))

	w.SetSize(core.Vec2u{X: 1000, Y: 500})
	w.SetTitle("renamed")
	assert.Equal(t, core.Vec2u{X: 400, Y: 300}, w.Size(), "getter reports live state until the OS applies the change")

	drv.Pump()
	assert.Equal(t, core.Vec2u{X: 800, Y: 500}, w.Size())
	assert.Equal(t, core.Vec2i{X: 0, Y: 10}, w.Position())
	assert.Equal(t, "renamed", w.Title())

	w.SetPosition(core.Vec2i{X: -50, Y: 900})
	drv.Pump()
	assert.Equal(t, core.Vec2i{X: 0, Y: 100}, w.Position())

	w.SetBounds(core.NewRect2i(100, 100, 200, 100))
	drv.Pump()
	assert.Equal(t, core.NewRect2i(100, 100, 200, 100), w.Bounds())
}

func TestResizeHandlerIsCoalesced(t *testing.T) {
	loop, drv := newTestLoop(t)

	var sizes []core.Rect2u
	w := newTestWindow(t, loop,
		platform.WithBorderless(true),
		platform.WithResizeHandler(func(size core.Rect2u) { sizes = append(sizes, size) }),
	)
	native := drv.Windows()[0]

	native.Resize(core.Vec2u{X: 500, Y: 400})
	native.Resize(core.Vec2u{X: 600, Y: 450})
	native.Resize(core.Vec2u{X: 700, Y: 500})
	drv.Pump()

	require.Len(t, sizes, 1)
	assert.Equal(t, core.Vec2u{X: 700, Y: 500}, sizes[0].Size)
	assert.Equal(t, sizes[0], w.InnerSize())

	native.Resize(core.Vec2u{X: 320, Y: 240})
	drv.Pump()
	require.Len(t, sizes, 2)
	assert.Equal(t, core.Vec2u{X: 320, Y: 240}, sizes[1].Size)
}

func TestSetResizeHandlerLater(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)

	calls := 0
	w.SetResizeHandler(func(core.Rect2u) { calls++ })
	w.SetSize(core.Vec2u{X: 640, Y: 480})
	drv.Pump()

	assert.Equal(t, 1, calls)
}

func TestResizeAfterDestroyIsDropped(t *testing.T) {
	loop, drv := newTestLoop(t)
	calls := 0
	w := newTestWindow(t, loop, platform.WithResizeHandler(func(core.Rect2u) { calls++ }))

	drv.Windows()[0].Resize(core.Vec2u{X: 300, Y: 300})
	w.Destroy()
	drv.Pump()

	assert.Zero(t, calls)
	assert.True(t, w.Destroyed())
	assert.False(t, drv.Windows()[0].Alive())
}

func TestToggleMaximizeRestoresBounds(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop, platform.WithSize(640, 480), platform.WithPosition(20, 30))
	before := w.Bounds()

	w.RequestToggleMaximize()
	assert.False(t, w.IsMaximized(), "fire-and-forget")
	drv.Pump()
	assert.True(t, w.IsMaximized())
	assert.Equal(t, headless.DefaultScreen, w.Bounds())

	w.RequestToggleMaximize()
	drv.Pump()
	assert.False(t, w.IsMaximized())
	assert.Equal(t, before, w.Bounds())
}

func TestRequestMinimize(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)

	w.RequestMinimize()
	drv.Pump()
	assert.True(t, w.IsMinimized())
}

func TestRequestCloseNotifiesHandler(t *testing.T) {
	loop, drv := newTestLoop(t)
	closed := 0
	w := newTestWindow(t, loop, platform.WithCloseHandler(func() { closed++ }))

	w.RequestClose()
	assert.False(t, w.Destroyed())
	drv.Pump()

	assert.Equal(t, 1, closed)
	assert.True(t, w.Destroyed())
	assert.True(t, w.Handle().IsZero())

	w.RequestClose()
	w.Destroy()
	drv.Pump()
	assert.Equal(t, 1, closed)
}

func TestSetBorderlessIsIdempotent(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)
	native := drv.Windows()[0]

	w.SetBorderless(true)
	w.SetBorderless(true)
	drv.Pump()

	assert.True(t, w.IsBorderless())
	assert.True(t, native.Borderless())
	assert.Equal(t, w.Size(), w.InnerSize().Size)
}

func TestWindowBackgroundDoesNotReachWebView(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop, platform.WithBackgroundColor(core.Color4fFromHex(0x000000FF)))

	webBg := core.Color4fFromHex(0xFFFFFFFF)
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{BackgroundColor: &webBg}))
	drv.Pump()

	w.SetBackgroundColor(core.Color4fFromHex(0xFF0000FF))
	assert.Equal(t, uint32(0xFF0000FF), w.BackgroundColor().ToHex())
	assert.Equal(t, uint32(0xFF0000FF), drv.Windows()[0].Background().ToHex())
	assert.Equal(t, uint32(0xFFFFFFFF), drv.LastWebView().Background().ToHex())
}

func TestLoopCloseTearsDown(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)
	ready, _ := newReadyWebView(t, loop, drv)

	pending := platform.NewWebView(loop)
	pending.OnReady = func() { t.Fatal("OnReady called after Close") }
	require.NoError(t, pending.BeginSetupWindow(w, platform.WebViewSettings{}))

	loop.Close()
	drv.Pump()

	assert.True(t, loop.Closed())
	assert.True(t, w.Destroyed())
	assert.Equal(t, platform.StateDestroyed, ready.State())
	assert.Equal(t, platform.StateDestroyed, pending.State())
	assert.Zero(t, drv.Pending())

	loop.Close()
}

func TestLoopPostAndRun(t *testing.T) {
	loop, _ := newTestLoop(t)

	var order []int
	loop.Post(func() { order = append(order, 1) })
	loop.Post(func() {
		order = append(order, 2)
		loop.Quit()
	})

	require.NoError(t, loop.Run(testContext()))
	assert.Equal(t, []int{1, 2}, order)
}

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

func TestConstructedWebViewRejectsReadyOnlyOperations(t *testing.T) {
	loop, _ := newTestLoop(t)
	wv := platform.NewWebView(loop)

	assert.False(t, wv.SetupFinished())
	assert.Equal(t, platform.StateConstructed, wv.State())

	ops := map[string]func() error{
		"Navigate":       func() error { return wv.Navigate("https://example.com") },
		"SendMessage":    func() error { return wv.SendMessage(`{"a":1}`) },
		"SendMessageStr": func() error { return wv.SendMessageStr("hello") },
		"SetBounds":      func() error { return wv.SetBounds(core.NewRect2i(0, 0, 10, 10)) },
		"Focus":          func() error { return wv.Focus(platform.FocusProgrammatic) },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			require.ErrorIs(t, err, platform.ErrPreconditionViolation)

			var pe *platform.PreconditionError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "constructed", pe.State)
		})
	}
}

func TestBeginSetupBecomesReady(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)
	wv := platform.NewWebView(loop)

	readyCalls := 0
	wv.OnReady = func() {
		readyCalls++
		assert.True(t, wv.SetupFinished(), "SetupFinished must be true inside OnReady")
	}

	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}))
	assert.Equal(t, platform.StateSettingUp, wv.State())
	assert.False(t, wv.SetupFinished())
	assert.ErrorIs(t, wv.Navigate("https://example.com"), platform.ErrPreconditionViolation)

	drv.Pump()
	assert.Equal(t, 1, readyCalls)
	assert.Equal(t, platform.StateReady, wv.State())
	assert.Equal(t, 0, loop.PendingSetups())

	require.NoError(t, wv.Navigate("https://example.com"))
	require.NoError(t, wv.SendMessage(`{"hello":"world"}`))
	drv.Pump()

	native := drv.LastWebView()
	assert.Equal(t, []string{"https://example.com"}, native.History())
	assert.Equal(t, []string{`{"hello":"world"}`}, native.Inbox())
	assert.Equal(t, 1, readyCalls)
}

func TestSetupDelayHoldsReadiness(t *testing.T) {
	loop, drv := newTestLoop(t, headless.WithSetupDelay(3))
	w := newTestWindow(t, loop)
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}))

	for range 3 {
		drv.PumpOnce()
		assert.False(t, wv.SetupFinished())
	}
	drv.PumpOnce()
	assert.True(t, wv.SetupFinished())
}

func TestBeginSetupTwiceIsRejected(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)
	wv := platform.NewWebView(loop)

	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}))
	assert.ErrorIs(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}), platform.ErrPreconditionViolation)

	drv.Pump()
	require.True(t, wv.SetupFinished())
	assert.ErrorIs(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}), platform.ErrPreconditionViolation)
	assert.Len(t, drv.WebViews(), 1)
}

func TestBeginSetupRequiresTarget(t *testing.T) {
	loop, _ := newTestLoop(t)
	wv := platform.NewWebView(loop)

	assert.ErrorIs(t, wv.BeginSetup(platform.WindowHandle{}, platform.WebViewSettings{}), platform.ErrPreconditionViolation)
	assert.Equal(t, platform.StateConstructed, wv.State())
}

func TestBeginSetupWithRawHandle(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)

	handle := platform.HandleFromNative(w.Handle().Native())
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetup(handle, platform.WebViewSettings{}))
	drv.Pump()

	assert.True(t, wv.SetupFinished())
	assert.Same(t, drv.Windows()[0], drv.LastWebView().Parent())
}

func TestMoveConstructedLeavesSourceInert(t *testing.T) {
	loop, drv := newTestLoop(t)
	src := platform.NewWebView(loop)
	ready := false
	src.OnReady = func() { ready = true }

	dst, err := src.Move()
	require.NoError(t, err)
	assert.Equal(t, platform.StateMoved, src.State())
	assert.Equal(t, platform.StateConstructed, dst.State())
	assert.Equal(t, src.ID(), dst.ID())

	assert.ErrorIs(t, src.Navigate("https://example.com"), platform.ErrPreconditionViolation)
	assert.ErrorIs(t, src.BeginSetupWindow(newTestWindow(t, loop), platform.WebViewSettings{}), platform.ErrPreconditionViolation)
	src.Destroy()

	require.NoError(t, dst.BeginSetupWindow(newTestWindow(t, loop), platform.WebViewSettings{}))
	drv.Pump()
	assert.True(t, ready, "callbacks travel with the move")
	assert.True(t, dst.SetupFinished())
}

func TestMoveDuringSetupIsRejected(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetupWindow(newTestWindow(t, loop), platform.WebViewSettings{}))

	moved, err := wv.Move()
	assert.Nil(t, moved)
	assert.ErrorIs(t, err, platform.ErrPreconditionViolation)
	assert.Equal(t, platform.StateSettingUp, wv.State())

	drv.Pump()
	assert.True(t, wv.SetupFinished())
}

func TestMoveReadyRoutesEventsToDestination(t *testing.T) {
	loop, drv := newTestLoop(t)
	src, native := newReadyWebView(t, loop, drv)

	var got []string
	src.OnMessage = func(text string) { got = append(got, text) }

	dst, err := src.Move()
	require.NoError(t, err)
	assert.True(t, dst.SetupFinished())

	native.EmitMessage("after-move")
	drv.Pump()
	assert.Equal(t, []string{"after-move"}, got)

	require.NoError(t, dst.SendMessageStr("ping"))
	drv.Pump()
	assert.Equal(t, []string{"ping"}, native.Inbox())

	dst.Destroy()
	assert.True(t, native.Destroyed())
}

func TestMessagesArriveInOrder(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)

	var got []string
	wv.OnMessage = func(text string) { got = append(got, text) }

	native.EmitMessage("A")
	native.EmitMessage("B")
	native.EmitMessage("C")
	drv.Pump()

	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestDestroyDuringSetupSuppressesCompletion(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv := platform.NewWebView(loop)
	wv.OnReady = func() { t.Fatal("OnReady called after Destroy") }
	wv.OnSetupFailed = func(error) { t.Fatal("OnSetupFailed called after Destroy") }

	require.NoError(t, wv.BeginSetupWindow(newTestWindow(t, loop), platform.WebViewSettings{}))
	wv.Destroy()
	assert.Equal(t, platform.StateDestroyed, wv.State())

	drv.Pump()
	require.Len(t, drv.WebViews(), 1)
	assert.True(t, drv.LastWebView().Destroyed(), "late native surface is released")
	assert.Equal(t, 0, loop.PendingSetups())
	assert.ErrorIs(t, wv.Navigate("https://example.com"), platform.ErrPreconditionViolation)

	wv.Destroy()
}

func TestSetupFailureReportsFailedState(t *testing.T) {
	loop, drv := newTestLoop(t)
	drv.FailNextWebView(errors.New("no GPU"))

	wv := platform.NewWebView(loop)
	wv.OnReady = func() { t.Fatal("OnReady called on failure") }
	var setupErr error
	wv.OnSetupFailed = func(err error) { setupErr = err }

	require.NoError(t, wv.BeginSetupWindow(newTestWindow(t, loop), platform.WebViewSettings{}))
	drv.Pump()

	require.Error(t, setupErr)
	assert.ErrorIs(t, setupErr, platform.ErrBackendAllocation)
	assert.Contains(t, setupErr.Error(), "no GPU")
	assert.Equal(t, platform.StateFailed, wv.State())
	assert.ErrorIs(t, wv.Navigate("https://example.com"), platform.ErrPreconditionViolation)
}

func TestSendMessageValidatesPayload(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)

	assert.ErrorIs(t, wv.SendMessage(`{"a":`), platform.ErrInvalidEncoding)
	assert.ErrorIs(t, wv.SendMessage(`{"a":1} trailing`), platform.ErrInvalidEncoding)
	assert.ErrorIs(t, wv.SendMessage(""), platform.ErrInvalidEncoding)
	assert.ErrorIs(t, wv.SendMessageStr("bad \xff byte"), platform.ErrInvalidEncoding)
	assert.ErrorIs(t, wv.SendMessageStrUTF16([]uint16{'h', 0xD800, 'i'}), platform.ErrInvalidEncoding)
	assert.ErrorIs(t, wv.Navigate("https://example.com/\xc3"), platform.ErrInvalidEncoding)

	require.NoError(t, wv.SendMessage(`[1,2,3]`))
	require.NoError(t, wv.SendMessageJSON(map[string]int{"n": 1}))
	require.NoError(t, wv.SendMessageStr("plain text"))
	require.NoError(t, wv.SendMessageStrUTF8([]byte("bytes")))
	require.NoError(t, wv.SendMessageStrUTF16(platform.StringToUTF16("wide 🙂")))
	drv.Pump()

	assert.Equal(t, []string{`[1,2,3]`, `{"n":1}`, "plain text", "bytes", "wide 🙂"}, native.Inbox())
}

func TestNavigateEncodingsAgree(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)

	const url = "https://example.com/café"
	require.NoError(t, wv.Navigate(url))
	require.NoError(t, wv.NavigateUTF8([]byte(url)))
	require.NoError(t, wv.NavigateUTF16(platform.StringToUTF16(url)))
	drv.Pump()

	assert.Equal(t, []string{url, url, url}, native.History())
}

func TestAppearanceOperations(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)

	bounds := core.NewRect2i(10, 20, 300, 200)
	require.NoError(t, wv.SetBounds(bounds))
	require.NoError(t, wv.SetBackgroundColor(core.Color4fFromHex(0x336699FF)))
	require.NoError(t, wv.SetTransparentBackground(true))
	require.NoError(t, wv.Focus(platform.FocusTabNext))

	assert.Equal(t, bounds, native.Bounds())
	assert.Equal(t, uint32(0x336699FF), native.Background().ToHex())
	assert.True(t, native.Transparent())
	focused, reason := native.Focused()
	assert.True(t, focused)
	assert.Equal(t, platform.FocusTabNext, reason)
}

func TestSetParentWindow(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)
	other := newTestWindow(t, loop, platform.WithTitle("other"))

	require.NoError(t, wv.SetParentWindow(other.Handle()))
	assert.Equal(t, "other", native.Parent().Title())

	assert.ErrorIs(t, wv.SetParentWindow(platform.WindowHandle{}), platform.ErrPreconditionViolation)

	other.Destroy()
	assert.Error(t, wv.SetParentWindow(platform.HandleFromNative(drv.Windows()[1])))
}

func TestSettingsAreCopiedAtSetup(t *testing.T) {
	loop, drv := newTestLoop(t)
	bg := core.Color4f{R: 0, G: 0, B: 0, A: 1}
	settings := platform.WebViewSettings{
		DeveloperExtras: true,
		UserAgent:       "appplatform-test",
		BackgroundColor: &bg,
	}

	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetupWindow(newTestWindow(t, loop), settings))
	settings.UserAgent = "changed"
	bg.R = 1
	drv.Pump()

	got := drv.LastWebView().Settings()
	assert.True(t, got.DeveloperExtras)
	assert.Equal(t, "appplatform-test", got.UserAgent)
	assert.Equal(t, float32(0), drv.LastWebView().Background().R)
}

func TestAcceleratorKeysPreemptContent(t *testing.T) {
	loop, drv := newTestLoop(t)
	w := newTestWindow(t, loop)
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.RegisterAccelerator("ctrl+shift+i"))

	var keys []platform.AcceleratorKey
	wv.OnAcceleratorKey = func(key platform.AcceleratorKey) { keys = append(keys, key) }

	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}))
	drv.Pump()
	require.NoError(t, wv.RegisterAccelerator("f5"))

	native := drv.LastWebView()
	inspector, _ := platform.ParseAccelerator("ctrl+shift+i")
	inspector.RepeatCount = 2
	reload, _ := platform.ParseAccelerator("F5")
	plain, _ := platform.ParseAccelerator("a")

	native.PressKey(inspector)
	native.PressKey(plain)
	native.PressKey(reload)
	drv.Pump()

	require.Len(t, keys, 2)
	assert.Equal(t, "ctrl+shift+i", keys[0].String())
	assert.Equal(t, uint32(2), keys[0].RepeatCount)
	assert.Equal(t, "f5", keys[1].String())
	assert.Len(t, native.TypedKeys(), 1)
	assert.Len(t, wv.Accelerators(), 2)
}

func TestReplacingAcceleratorsReleasesKeys(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)
	require.NoError(t, wv.RegisterAccelerator("ctrl+r"))
	require.NoError(t, wv.RegisterAccelerator("ctrl+q"))

	var keys []string
	wv.OnAcceleratorKey = func(key platform.AcceleratorKey) { keys = append(keys, key.String()) }

	reload, _ := platform.ParseAccelerator("ctrl+r")
	quit, _ := platform.ParseAccelerator("ctrl+q")
	f5, _ := platform.ParseAccelerator("f5")

	require.NoError(t, wv.UnregisterAcceleratorKey(reload))
	require.NoError(t, wv.UnregisterAcceleratorKey(reload))
	native.PressKey(reload)
	native.PressKey(quit)
	drv.Pump()
	assert.Equal(t, []string{"ctrl+q"}, keys)
	assert.Len(t, native.TypedKeys(), 1)

	require.NoError(t, wv.SetAcceleratorKeys([]platform.AcceleratorKey{f5, f5}))
	native.PressKey(quit)
	native.PressKey(f5)
	drv.Pump()
	assert.Equal(t, []string{"ctrl+q", "f5"}, keys)
	assert.Len(t, native.TypedKeys(), 2)
	assert.Len(t, wv.Accelerators(), 1)

	wv.Destroy()
	assert.ErrorIs(t, wv.SetAcceleratorKeys(nil), platform.ErrPreconditionViolation)
	assert.ErrorIs(t, wv.UnregisterAcceleratorKey(f5), platform.ErrPreconditionViolation)
}

func TestRegisterAcceleratorRejectsBadChord(t *testing.T) {
	loop, _ := newTestLoop(t)
	wv := platform.NewWebView(loop)
	assert.Error(t, wv.RegisterAccelerator("ctrl+"))

	wv.Destroy()
	assert.ErrorIs(t, wv.RegisterAccelerator("ctrl+r"), platform.ErrPreconditionViolation)
}

func TestPermissionRequestCompletion(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)
	require.NoError(t, wv.Navigate("https://meet.example.com:8443/room/42"))
	drv.Pump()

	var seen *platform.PermissionRequest
	wv.OnPermissionRequest = func(req *platform.PermissionRequest) {
		seen = req
		require.NoError(t, req.SetResponse(platform.ResponseAllow))
		require.NoError(t, req.SetSavesInProfile(true))
		require.NoError(t, req.MarkCompleted())
	}

	prompt := native.RequestPermission(platform.PermissionCamera, true)
	drv.Pump()

	require.NotNil(t, seen)
	assert.Equal(t, "camera", seen.Kind().String())
	assert.True(t, seen.UserInitiated())
	assert.Equal(t, "https://meet.example.com:8443", seen.Origin())
	assert.Equal(t, 1, prompt.Completions())
	assert.Equal(t, platform.ResponseAllow, prompt.Response())
	assert.True(t, prompt.Saved())
}

func TestPendingPermissionDeniedOnDestroy(t *testing.T) {
	loop, drv := newTestLoop(t)
	wv, native := newReadyWebView(t, loop, drv)

	var held *platform.PermissionRequest
	wv.OnPermissionRequest = func(req *platform.PermissionRequest) {
		held = req
		_ = req.SetResponse(platform.ResponseAllow)
		_ = req.SetSavesInProfile(true)
	}

	prompt := native.RequestPermission(platform.PermissionMicrophone, false)
	drv.Pump()
	require.NotNil(t, held)
	assert.False(t, prompt.Completed())

	wv.Destroy()
	assert.Equal(t, 1, prompt.Completions())
	assert.Equal(t, platform.ResponseDeny, prompt.Response())
	assert.False(t, prompt.Saved())
	assert.ErrorIs(t, held.MarkCompleted(), platform.ErrPreconditionViolation)
}

func TestPermissionWithoutHandlerIsDenied(t *testing.T) {
	loop, drv := newTestLoop(t)
	_, native := newReadyWebView(t, loop, drv)

	prompt := native.RequestPermission(platform.PermissionGeolocation, true)
	drv.Pump()

	assert.Equal(t, 1, prompt.Completions())
	assert.Equal(t, platform.ResponseDeny, prompt.Response())
}

func TestHostedContentRoundTrip(t *testing.T) {
	const page = "app://index.html"
	script := `
		host.onmessage = function (msg) {
			host.postMessage("echo:" + msg);
		};
		host.postMessage("loaded:" + host.location);
	`
	loop, drv := newTestLoop(t, headless.WithContent(page, script))
	wv, native := newReadyWebView(t, loop, drv)

	var got []string
	wv.OnMessage = func(text string) { got = append(got, text) }

	require.NoError(t, wv.Navigate(page))
	drv.Pump()
	require.NoError(t, wv.SendMessageStr("hi"))
	drv.Pump()

	require.NoError(t, native.ScriptError())
	assert.Equal(t, []string{"loaded:" + page, "echo:hi"}, got)
}

func TestHostedContentPermissionCallback(t *testing.T) {
	const page = "https://cam.example.com/"
	script := `
		host.requestPermission("camera", function (answer) {
			host.postMessage("camera:" + answer);
		}, true);
	`
	loop, drv := newTestLoop(t, headless.WithContent(page, script))
	wv, native := newReadyWebView(t, loop, drv)

	var got []string
	wv.OnMessage = func(text string) { got = append(got, text) }
	wv.OnPermissionRequest = func(req *platform.PermissionRequest) {
		assert.Equal(t, page, req.URL())
		require.NoError(t, req.SetResponse(platform.ResponseDeny))
		require.NoError(t, req.MarkCompleted())
	}

	require.NoError(t, wv.Navigate(page))
	drv.Pump()

	require.NoError(t, native.ScriptError())
	assert.Equal(t, []string{"camera:deny"}, got)
}

func TestHostedContentScriptError(t *testing.T) {
	const page = "app://broken"
	loop, drv := newTestLoop(t, headless.WithContent(page, "host.postMessage(;"))
	wv, native := newReadyWebView(t, loop, drv)

	require.NoError(t, wv.Navigate(page))
	drv.Pump()
	assert.Error(t, native.ScriptError())
}

func TestStrictModePanicsOnViolation(t *testing.T) {
	drv := headless.New()
	loop, err := platform.NewLoop(testContext(), drv, platform.WithStrictPreconditions(true))
	require.NoError(t, err)
	t.Cleanup(loop.Close)

	wv := platform.NewWebView(loop)
	assert.Panics(t, func() { _ = wv.Navigate("https://example.com") })
}

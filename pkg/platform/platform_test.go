package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/pkg/platform"
	"github.com/ubytes/appplatform/pkg/platform/headless"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func newTestLoop(t *testing.T, opts ...headless.Option) (*platform.Loop, *headless.Driver) {
	t.Helper()
	drv := headless.New(opts...)
	loop, err := platform.NewLoop(testContext(), drv)
	require.NoError(t, err)
	t.Cleanup(loop.Close)
	return loop, drv
}

func newTestWindow(t *testing.T, loop *platform.Loop, opts ...platform.WindowOption) *platform.Window {
	t.Helper()
	w, err := platform.NewWindow(loop, opts...)
	require.NoError(t, err)
	return w
}

// newReadyWebView returns a web view that has completed setup, along with its
// simulated native surface.
func newReadyWebView(t *testing.T, loop *platform.Loop, drv *headless.Driver) (*platform.WebView, *headless.WebView) {
	t.Helper()
	w := newTestWindow(t, loop)
	wv := platform.NewWebView(loop)
	require.NoError(t, wv.BeginSetupWindow(w, platform.WebViewSettings{}))
	drv.Pump()
	require.True(t, wv.SetupFinished())
	return wv, drv.LastWebView()
}

// Package bootstrap wires configuration, permission storage and the platform
// layer into one running application window.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/ubytes/appplatform/internal/application/usecase"
	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/infrastructure/permission"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform"
)

// AppInput holds what NewApp needs. Permissions may be nil, in which case
// decisions are never stored.
type AppInput struct {
	Config      *config.Config
	Loop        *platform.Loop
	Permissions repository.PermissionRepository
	// StartURL overrides webview.start_url when set.
	StartURL string
}

// App owns the main window and its web view. Apart from ApplyConfig and
// Quit, its methods must be called on the UI thread.
type App struct {
	ctx    context.Context
	logger zerolog.Logger
	cfg    *config.Config
	guard  *threadGuard

	loop    *platform.Loop
	window  *platform.Window
	webview *platform.WebView
	bridge  *Bridge

	permissions *usecase.HandlePermissionUseCase
	bindings    []binding

	startURL   string
	currentURL string
	setupErr   error
}

type binding struct {
	key    platform.AcceleratorKey
	action string
}

// NewApp creates the window, registers accelerators and starts the web view
// setup. The web view navigates to the start URL once it is ready.
func NewApp(ctx context.Context, in AppInput) (*App, error) {
	if in.Config == nil || in.Loop == nil {
		return nil, fmt.Errorf("bootstrap: config and loop are required")
	}
	cfg := in.Config.Clone()
	logger := logging.FromContext(ctx).With().Str("component", "app").Logger()

	a := &App{
		ctx:      ctx,
		logger:   logger,
		cfg:      cfg,
		guard:    newThreadGuard(cfg.Debug.ThreadCheck, &logger),
		loop:     in.Loop,
		startURL: in.StartURL,
		permissions: usecase.NewHandlePermissionUseCase(
			in.Permissions,
			permission.NewPolicyPrompter(cfg.Permissions),
			cfg.Permissions.Remember,
		),
	}
	if a.startURL == "" {
		a.startURL = cfg.WebView.StartURL
	}

	bindings, err := parseBindings(cfg.Accelerators.Bindings)
	if err != nil {
		return nil, err
	}
	a.bindings = bindings

	background, err := core.ParseHexColor(cfg.Window.Background)
	if err != nil {
		return nil, fmt.Errorf("window background: %w", err)
	}

	window, err := platform.NewWindow(a.loop,
		platform.WithTitle(cfg.Window.Title),
		platform.WithSize(uint32(cfg.Window.Width), uint32(cfg.Window.Height)),
		platform.WithBorderless(cfg.Window.Borderless),
		platform.WithBackgroundColor(background),
		platform.WithResizeHandler(a.handleResize),
		platform.WithCloseHandler(a.handleClose),
	)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	a.window = window
	if cfg.Window.Maximized {
		window.RequestToggleMaximize()
	}

	a.webview = platform.NewWebView(a.loop)
	a.webview.OnReady = a.handleReady
	a.webview.OnSetupFailed = a.handleSetupFailed
	a.webview.OnMessage = a.handleMessage
	a.webview.OnAcceleratorKey = a.handleAccelerator
	a.webview.OnPermissionRequest = a.handlePermission
	a.bridge = NewBridge(window, a.webview, logger)

	for _, b := range a.bindings {
		if err := a.webview.RegisterAcceleratorKey(b.key); err != nil {
			window.Destroy()
			return nil, fmt.Errorf("register accelerator %s: %w", b.key, err)
		}
	}

	settings, err := webViewSettings(cfg)
	if err != nil {
		window.Destroy()
		return nil, err
	}
	if err := a.webview.BeginSetupWindow(window, settings); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("begin webview setup: %w", err)
	}

	logger.Debug().
		Str("start_url", a.startURL).
		Int("accelerators", len(a.bindings)).
		Msg("application window created")
	return a, nil
}

func (a *App) Window() *platform.Window {
	return a.window
}

func (a *App) WebView() *platform.WebView {
	return a.webview
}

// Run blocks on the loop and tears everything down when it returns. A web
// view setup failure is reported as the error.
func (a *App) Run(ctx context.Context) error {
	err := a.loop.Run(ctx)
	a.Close()
	if a.setupErr != nil {
		return a.setupErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Quit asks Run to return. Safe from any goroutine.
func (a *App) Quit() {
	a.loop.Quit()
}

// Close destroys the web view, the window and the loop. It is idempotent.
func (a *App) Close() {
	a.webview.Destroy()
	a.window.Destroy()
	a.loop.Close()
}

// ApplyConfig updates the live window from a reloaded config. Safe from any
// goroutine; the update runs on the UI thread.
func (a *App) ApplyConfig(cfg *config.Config) {
	next := cfg.Clone()
	a.loop.Post(func() {
		a.applyConfig(next)
	})
}

func (a *App) applyConfig(cfg *config.Config) {
	a.guard.check("ApplyConfig")
	prev := a.cfg
	a.cfg = cfg

	if cfg.Window.Title != prev.Window.Title {
		a.window.SetTitle(cfg.Window.Title)
	}
	if cfg.Window.Borderless != prev.Window.Borderless {
		a.window.SetBorderless(cfg.Window.Borderless)
	}
	if c, err := core.ParseHexColor(cfg.Window.Background); err == nil {
		a.window.SetBackgroundColor(c)
	}
	if a.webview.SetupFinished() && cfg.WebView.Background != "" {
		if c, err := core.ParseHexColor(cfg.WebView.Background); err == nil {
			_ = a.webview.SetBackgroundColor(c)
		}
	}

	if bindings, err := parseBindings(cfg.Accelerators.Bindings); err != nil {
		a.logger.Warn().Err(err).Msg("keeping previous accelerators")
	} else {
		keys := make([]platform.AcceleratorKey, 0, len(bindings))
		for _, b := range bindings {
			keys = append(keys, b.key)
		}
		if err := a.webview.SetAcceleratorKeys(keys); err != nil {
			a.logger.Warn().Err(err).Msg("failed to replace accelerators")
		} else {
			a.bindings = bindings
		}
	}

	a.permissions.SetPrompter(permission.NewPolicyPrompter(cfg.Permissions))
	a.permissions.SetRemember(cfg.Permissions.Remember)
	a.logger.Info().Msg("configuration applied")
}

func (a *App) handleReady() {
	a.guard.check("OnReady")
	a.fitWebView(a.window.InnerSize())
	if err := a.webview.Focus(platform.FocusProgrammatic); err != nil {
		a.logger.Debug().Err(err).Msg("focus failed")
	}
	if a.startURL != "" {
		a.navigate(a.startURL)
	}
	a.logger.Info().Str("url", a.startURL).Msg("webview ready")
}

func (a *App) handleSetupFailed(err error) {
	a.guard.check("OnSetupFailed")
	a.setupErr = fmt.Errorf("webview setup failed: %w", err)
	a.logger.Error().Err(err).Msg("webview setup failed")
	a.loop.Quit()
}

func (a *App) handleResize(size core.Rect2u) {
	a.guard.check("OnResize")
	if !a.webview.SetupFinished() {
		return
	}
	a.fitWebView(size)
}

func (a *App) fitWebView(size core.Rect2u) {
	bounds := core.NewRect2i(0, 0, size.Size.X, size.Size.Y)
	if err := a.webview.SetBounds(bounds); err != nil {
		a.logger.Debug().Err(err).Msg("set webview bounds failed")
	}
}

func (a *App) handleClose() {
	a.guard.check("OnClose")
	a.logger.Debug().Msg("main window closed")
	a.loop.Quit()
}

func (a *App) handleMessage(text string) {
	a.guard.check("OnMessage")
	if a.cfg.Debug.EchoMessages {
		a.logger.Debug().Str("text", text).Msg("web message")
	}
	if a.bridge.Handle(text) {
		return
	}
	a.logger.Trace().Int("len", len(text)).Msg("unhandled web message")
}

func (a *App) handleAccelerator(key platform.AcceleratorKey) {
	a.guard.check("OnAcceleratorKey")
	action := a.actionFor(key)
	a.logger.Debug().Str("chord", key.String()).Str("action", action).Msg("accelerator")

	switch action {
	case config.ActionReload:
		if a.currentURL != "" {
			a.navigate(a.currentURL)
		}
	case config.ActionQuit:
		a.loop.Quit()
	case config.ActionToggleMaximize:
		a.window.RequestToggleMaximize()
	case config.ActionMinimize:
		a.window.RequestMinimize()
	case config.ActionToggleBorderless:
		a.window.SetBorderless(!a.window.IsBorderless())
	}
}

func (a *App) actionFor(key platform.AcceleratorKey) string {
	for _, b := range a.bindings {
		if b.key.Matches(key) {
			return b.action
		}
	}
	return ""
}

func (a *App) navigate(url string) {
	if err := a.webview.Navigate(url); err != nil {
		a.logger.Warn().Err(err).Str("url", url).Msg("navigation failed")
		return
	}
	a.currentURL = url
}

// handlePermission decides off the UI thread, since the decision may hit the
// database, and completes the request back on it. A request the web view
// already denied (for example on Destroy) is left alone.
func (a *App) handlePermission(req *platform.PermissionRequest) {
	a.guard.check("OnPermissionRequest")
	in := usecase.PermissionInput{
		Origin:        req.Origin(),
		URL:           req.URL(),
		Type:          entity.PermissionType(req.Kind().String()),
		UserInitiated: req.UserInitiated(),
	}

	go func() {
		outcome := a.permissions.Execute(a.ctx, in)
		a.loop.Post(func() {
			a.completePermission(req, outcome)
		})
	}()
}

func (a *App) completePermission(req *platform.PermissionRequest, outcome usecase.PermissionOutcome) {
	if req.Completed() {
		return
	}
	response := responseFor(outcome.Decision)
	if err := req.SetResponse(response); err != nil {
		return
	}
	if err := req.SetSavesInProfile(outcome.Persisted); err != nil {
		return
	}
	if err := req.MarkCompleted(); err != nil {
		return
	}
	a.logger.Info().
		Str("kind", req.Kind().String()).
		Str("origin", req.Origin()).
		Str("response", response.String()).
		Str("source", outcome.Source).
		Bool("persisted", outcome.Persisted).
		Msg("permission answered")
}

func responseFor(decision entity.PermissionDecision) platform.PermissionResponse {
	switch decision {
	case entity.PermissionGranted:
		return platform.ResponseAllow
	case entity.PermissionDenied:
		return platform.ResponseDeny
	default:
		return platform.ResponseDefault
	}
}

// parseBindings turns action → chord pairs into a list sorted by action.
// Empty chords disable an action.
func parseBindings(m map[string]string) ([]binding, error) {
	actions := make([]string, 0, len(m))
	for action := range m {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	out := make([]binding, 0, len(actions))
	for _, action := range actions {
		chord := m[action]
		if chord == "" {
			continue
		}
		key, err := platform.ParseAccelerator(chord)
		if err != nil {
			return nil, fmt.Errorf("accelerator %s: %w", action, err)
		}
		out = append(out, binding{key: key, action: action})
	}
	return out, nil
}

func webViewSettings(cfg *config.Config) (platform.WebViewSettings, error) {
	s := platform.WebViewSettings{
		ElasticOverscroll:     cfg.WebView.ElasticOverscroll,
		DraggableRegions:      cfg.WebView.DraggableRegions,
		DeveloperExtras:       cfg.WebView.DeveloperExtras,
		TransparentBackground: cfg.WebView.TransparentBackground,
		UserAgent:             cfg.WebView.UserAgent,
	}
	if cfg.WebView.Background != "" {
		c, err := core.ParseHexColor(cfg.WebView.Background)
		if err != nil {
			return s, fmt.Errorf("webview background: %w", err)
		}
		s.BackgroundColor = &c
	}
	return s, nil
}

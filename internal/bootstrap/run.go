package bootstrap

import (
	"context"
	"fmt"

	"github.com/ubytes/appplatform/internal/infrastructure/cache"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/infrastructure/persistence/sqlite"
	"github.com/ubytes/appplatform/internal/logging"
)

// RunInput holds the options of the run command.
type RunInput struct {
	// Manager must already be loaded.
	Manager *config.Manager
	// StartURL overrides webview.start_url.
	StartURL string
	// Backend overrides backend.name when set.
	Backend    config.BackendName
	ScriptFile string
	// Watch applies config file edits to the live window.
	Watch bool
}

// Run starts the application and blocks until the main window closes, the
// quit accelerator fires or ctx ends.
func Run(ctx context.Context, in RunInput) error {
	timer := NewStartupTimer()
	log := logging.FromContext(ctx)

	cfg := in.Manager.Get()
	if in.Backend != "" {
		cfg.Backend.Name = in.Backend
	}
	startURL := in.StartURL
	if startURL == "" {
		startURL = cfg.WebView.StartURL
	}

	initResult, err := RunParallelInit(ctx, ParallelInitInput{
		Config:     cfg,
		ConfigFile: in.Manager.ConfigFile(),
	})
	if err != nil {
		return err
	}
	timer.MarkDuration("parallel_init", initResult.Duration)

	lazyDB := sqlite.NewLazyDB(cfg.Permissions.DatabasePath)
	defer func() {
		if closeErr := lazyDB.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close permission database")
		}
	}()

	loop, err := OpenLoop(ctx, cfg.Backend, BackendOptions{
		ScriptFile: in.ScriptFile,
		StartURL:   startURL,
	})
	if err != nil {
		return fmt.Errorf("open event loop: %w", err)
	}
	timer.Mark("backend")

	app, err := NewApp(ctx, AppInput{
		Config:      cfg,
		Loop:        loop,
		Permissions: cache.NewPermissionRepository(sqlite.NewLazyPermissionRepository(lazyDB), cache.DefaultPermissionCapacity),
		StartURL:    startURL,
	})
	if err != nil {
		loop.Close()
		return err
	}
	timer.Mark("window")

	if in.Watch {
		in.Manager.OnConfigChange(app.ApplyConfig)
		if err := in.Manager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	stop := context.AfterFunc(ctx, app.Quit)
	defer stop()

	timer.Log(ctx)
	log.Info().
		Str("backend", loop.Driver().Name()).
		Str("url", startURL).
		Msg("appplatform started")
	return app.Run(ctx)
}

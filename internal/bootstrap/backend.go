package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/logging"
	"github.com/ubytes/appplatform/pkg/platform"
	"github.com/ubytes/appplatform/pkg/platform/driver"
	"github.com/ubytes/appplatform/pkg/platform/headless"
	"github.com/ubytes/appplatform/pkg/platform/webkitgtk"
)

// BackendOptions carries the run-time knobs that only apply to some backends.
type BackendOptions struct {
	// ScriptFile is loaded as hosted content for the start URL when the
	// headless backend is selected.
	ScriptFile string
	StartURL   string
}

// newWebKitGTK is swapped in tests.
var newWebKitGTK = webkitgtk.New

// OpenLoop selects a driver for cfg.Name and initializes a Loop on it.
// BackendAuto tries WebKitGTK first and falls back to headless when the GTK
// driver is not compiled in or cannot reach a display.
func OpenLoop(ctx context.Context, cfg config.BackendConfig, opts BackendOptions) (*platform.Loop, error) {
	log := logging.FromContext(ctx)
	loopOpts := []platform.LoopOption{platform.WithStrictPreconditions(cfg.StrictPreconditions)}

	switch cfg.Name {
	case config.BackendHeadless:
		drv, err := newHeadless(opts)
		if err != nil {
			return nil, err
		}
		return platform.NewLoop(ctx, drv, loopOpts...)

	case config.BackendWebKitGTK:
		drv, err := newWebKitGTK()
		if err != nil {
			return nil, fmt.Errorf("webkitgtk backend: %w", err)
		}
		return platform.NewLoop(ctx, drv, loopOpts...)

	case config.BackendAuto, "":
		drv, err := newWebKitGTK()
		if err == nil {
			loop, initErr := platform.NewLoop(ctx, drv, loopOpts...)
			if initErr == nil {
				return loop, nil
			}
			if !errors.Is(initErr, driver.ErrUnavailable) {
				return nil, initErr
			}
			err = initErr
		} else if !errors.Is(err, driver.ErrUnavailable) {
			return nil, fmt.Errorf("webkitgtk backend: %w", err)
		}
		log.Warn().Err(err).Msg("webkitgtk unavailable, falling back to headless backend")

		hl, hlErr := newHeadless(opts)
		if hlErr != nil {
			return nil, hlErr
		}
		return platform.NewLoop(ctx, hl, loopOpts...)
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Name)
}

func newHeadless(opts BackendOptions) (*headless.Driver, error) {
	if opts.ScriptFile == "" {
		return headless.New(), nil
	}
	if opts.StartURL == "" {
		return nil, fmt.Errorf("headless content script needs a start URL")
	}
	script, err := os.ReadFile(opts.ScriptFile)
	if err != nil {
		return nil, fmt.Errorf("read content script: %w", err)
	}
	return headless.New(headless.WithContent(opts.StartURL, string(script))), nil
}

// CompiledBackends lists the backends this binary can open.
func CompiledBackends() []string {
	if webkitgtk.Compiled {
		return []string{string(config.BackendWebKitGTK), string(config.BackendHeadless)}
	}
	return []string{string(config.BackendHeadless)}
}

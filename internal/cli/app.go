// Package cli holds the dependencies shared by the appplatform subcommands.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ubytes/appplatform/internal/application/usecase"
	"github.com/ubytes/appplatform/internal/cli/styles"
	"github.com/ubytes/appplatform/internal/domain/build"
	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/infrastructure/persistence/sqlite"
	"github.com/ubytes/appplatform/internal/logging"
)

// Options are the persistent root flags.
type Options struct {
	ConfigFile string
	LogLevel   string
}

// App holds CLI dependencies.
type App struct {
	Manager   *config.Manager
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	Permissions *usecase.ManagePermissionsUseCase

	ctx      context.Context
	lazyDB   *sqlite.LazyDB
	closeLog func()
}

// NewApp loads the config and prepares the permission store. The database
// is only opened by the commands that touch it.
func NewApp(opts Options) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if opts.ConfigFile != "" {
		mgr, err = config.NewManagerForFile(opts.ConfigFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger, closeLog := newLogger(level, cfg.Logging)
	ctx := logging.WithContext(context.Background(), logger)

	lazyDB := sqlite.NewLazyDB(cfg.Permissions.DatabasePath)

	return &App{
		Manager:     mgr,
		Config:      cfg,
		Theme:       styles.NewTheme(),
		Permissions: usecase.NewManagePermissionsUseCase(sqlite.NewLazyPermissionRepository(lazyDB)),
		ctx:         ctx,
		lazyDB:      lazyDB,
		closeLog:    closeLog,
	}, nil
}

// newLogger adds the rotated log file when logging.file is set. A file that
// cannot be opened is reported on the stderr logger and skipped.
func newLogger(level string, cfg config.LoggingConfig) (zerolog.Logger, func()) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(level)
	if cfg.Format == "json" {
		logCfg.Format = "json"
	}
	if !cfg.File {
		return logging.New(logCfg), func() {}
	}

	dir, err := config.GetLogDir()
	if err == nil {
		var (
			logger   zerolog.Logger
			closeLog func()
		)
		logger, closeLog, err = logging.NewWithFile(logCfg, logging.FileConfig{
			Dir:        dir,
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		if err == nil {
			return logger, closeLog
		}
	}
	logger := logging.New(logCfg)
	logger.Warn().Err(err).Msg("log file disabled")
	return logger, func() {}
}

// Context carries the configured logger.
func (a *App) Context() context.Context {
	return a.ctx
}

// Close releases the database if a command opened it and the log file.
func (a *App) Close() error {
	err := a.lazyDB.Close()
	a.closeLog()
	return err
}

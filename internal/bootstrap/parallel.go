package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ubytes/appplatform/internal/infrastructure/config"
	"github.com/ubytes/appplatform/internal/logging"
)

const dataDirPerm = 0o755

// ParallelInitInput holds the input for the parallel initialization phase.
type ParallelInitInput struct {
	Config     *config.Config
	ConfigFile string
}

// ParallelInitResult holds what the parallel phase produced.
type ParallelInitResult struct {
	SchemaFile string
	Duration   time.Duration
}

// RunParallelInit prepares the filesystem before the UI starts: XDG
// directories, the permission database directory and the JSON schema next to
// the config file. It returns the first error.
func RunParallelInit(ctx context.Context, input ParallelInitInput) (*ParallelInitResult, error) {
	start := time.Now()
	log := logging.FromContext(ctx)
	result := &ParallelInitResult{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := config.EnsureDirectories(); err != nil {
			return fmt.Errorf("create xdg directories: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		dbPath := input.Config.Permissions.DatabasePath
		if dbPath == "" {
			return nil
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), dataDirPerm); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
		return gctx.Err()
	})

	g.Go(func() error {
		if input.ConfigFile == "" {
			return nil
		}
		schema := config.SchemaFileFor(input.ConfigFile)
		if err := config.GenerateSchemaFile(schema); err != nil {
			// The schema only helps editors; a read-only config dir is fine.
			log.Warn().Err(err).Str("path", schema).Msg("failed to refresh config schema")
			return nil
		}
		result.SchemaFile = schema
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	result.Duration = time.Since(start)
	return result, nil
}

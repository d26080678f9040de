package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/ubytes/appplatform/internal/logging"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

const schemaDir = "migrations"

func useEmbeddedSchema() error {
	goose.SetBaseFS(schemaFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// Migrate brings the permission schema up to the latest embedded version.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := useEmbeddedSchema(); err != nil {
		return err
	}

	// A fresh file has no goose table yet.
	before, err := goose.GetDBVersion(db)
	if err != nil {
		before = 0
	}
	if err := goose.UpContext(ctx, db, schemaDir); err != nil {
		return fmt.Errorf("migrate permission schema: %w", err)
	}
	after, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Int64("schema_from", before).
		Int64("schema_to", after).
		Msg("permission schema ready")
	return nil
}

// SchemaVersion reports the applied schema version.
func SchemaVersion(db *sql.DB) (int64, error) {
	if err := useEmbeddedSchema(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
	"github.com/ubytes/appplatform/internal/logging"
)

const (
	selectPermission = `SELECT origin, permission_type, decision, updated_at
FROM permissions WHERE origin = ? AND permission_type = ?`
	upsertPermission = `INSERT INTO permissions (origin, permission_type, decision, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (origin, permission_type) DO UPDATE SET decision = excluded.decision, updated_at = excluded.updated_at`
	deletePermission       = `DELETE FROM permissions WHERE origin = ? AND permission_type = ?`
	deleteOriginPermission = `DELETE FROM permissions WHERE origin = ?`
	deleteAllPermissions   = `DELETE FROM permissions`
	listOriginPermissions  = `SELECT origin, permission_type, decision, updated_at
FROM permissions WHERE origin = ? ORDER BY permission_type`
	listPermissions = `SELECT origin, permission_type, decision, updated_at
FROM permissions ORDER BY origin, permission_type`
)

type dbProvider interface {
	DB(ctx context.Context) (*sql.DB, error)
}

type staticDB struct{ db *sql.DB }

func (s staticDB) DB(context.Context) (*sql.DB, error) { return s.db, nil }

type permissionRepo struct {
	provider dbProvider
}

// NewPermissionRepository creates a SQLite-backed permission repository.
func NewPermissionRepository(db *sql.DB) repository.PermissionRepository {
	return &permissionRepo{provider: staticDB{db: db}}
}

// NewLazyPermissionRepository creates a repository that opens the database on first use.
func NewLazyPermissionRepository(lazy *LazyDB) repository.PermissionRepository {
	return &permissionRepo{provider: lazy}
}

func (r *permissionRepo) Get(ctx context.Context, origin string, permType entity.PermissionType) (*entity.PermissionRecord, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("origin", origin).Str("type", string(permType)).Msg("getting permission")

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	record, err := scanPermission(db.QueryRowContext(ctx, selectPermission, origin, string(permType)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return record, err
}

func (r *permissionRepo) Set(ctx context.Context, record *entity.PermissionRecord) error {
	log := logging.FromContext(ctx)

	if record == nil {
		log.Error().Msg("cannot set nil permission record")
		return errors.New("cannot set nil permission record")
	}
	if !record.Decision.CanStore() {
		return fmt.Errorf("cannot store permission decision %q", record.Decision)
	}

	log.Debug().
		Str("origin", record.Origin).
		Str("type", string(record.Type)).
		Str("decision", string(record.Decision)).
		Msg("setting permission")

	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}
	updatedAt := record.UpdatedAt
	if updatedAt == 0 {
		updatedAt = time.Now().Unix()
	}
	_, err = db.ExecContext(ctx, upsertPermission, record.Origin, string(record.Type), string(record.Decision), updatedAt)
	return err
}

func (r *permissionRepo) Delete(ctx context.Context, origin string, permType entity.PermissionType) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("origin", origin).Str("type", string(permType)).Msg("deleting permission")

	_, err := r.exec(ctx, deletePermission, origin, string(permType))
	return err
}

func (r *permissionRepo) DeleteOrigin(ctx context.Context, origin string) (int64, error) {
	return r.exec(ctx, deleteOriginPermission, origin)
}

func (r *permissionRepo) DeleteAll(ctx context.Context) (int64, error) {
	return r.exec(ctx, deleteAllPermissions)
}

func (r *permissionRepo) GetAll(ctx context.Context, origin string) ([]*entity.PermissionRecord, error) {
	logging.FromContext(ctx).Debug().Str("origin", origin).Msg("getting all permissions for origin")
	return r.query(ctx, listOriginPermissions, origin)
}

func (r *permissionRepo) List(ctx context.Context) ([]*entity.PermissionRecord, error) {
	return r.query(ctx, listPermissions)
}

func (r *permissionRepo) exec(ctx context.Context, query string, args ...any) (int64, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *permissionRepo) query(ctx context.Context, query string, args ...any) ([]*entity.PermissionRecord, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*entity.PermissionRecord
	for rows.Next() {
		record, err := scanPermission(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPermission(row scanner) (*entity.PermissionRecord, error) {
	var (
		record   entity.PermissionRecord
		permType string
		decision string
	)
	if err := row.Scan(&record.Origin, &permType, &decision, &record.UpdatedAt); err != nil {
		return nil, err
	}
	record.Type = entity.PermissionType(permType)
	record.Decision = entity.PermissionDecision(decision)
	return &record, nil
}

package repository

import (
	"context"

	"github.com/ubytes/appplatform/internal/domain/entity"
)

// PermissionRepository defines operations for permission persistence.
type PermissionRepository interface {
	// Get retrieves the permission record for a specific origin and permission type.
	// Returns nil if no record exists (treat as "prompt" state).
	Get(ctx context.Context, origin string, permType entity.PermissionType) (*entity.PermissionRecord, error)

	// Set saves or updates a permission record.
	Set(ctx context.Context, record *entity.PermissionRecord) error

	// Delete removes a permission record for a specific origin and type.
	Delete(ctx context.Context, origin string, permType entity.PermissionType) error

	// GetAll retrieves all permission records for an origin.
	GetAll(ctx context.Context, origin string) ([]*entity.PermissionRecord, error)

	// List retrieves every stored record ordered by origin then type.
	List(ctx context.Context) ([]*entity.PermissionRecord, error)

	// DeleteOrigin removes every record for an origin and returns how many were removed.
	DeleteOrigin(ctx context.Context, origin string) (int64, error)

	// DeleteAll removes every record and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

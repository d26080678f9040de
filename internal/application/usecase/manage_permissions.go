package usecase

import (
	"context"
	"fmt"

	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
	"github.com/ubytes/appplatform/internal/logging"
)

// ManagePermissionsUseCase lists and clears stored permission decisions.
type ManagePermissionsUseCase struct {
	permRepo repository.PermissionRepository
}

// NewManagePermissionsUseCase creates a new ManagePermissionsUseCase.
func NewManagePermissionsUseCase(permRepo repository.PermissionRepository) *ManagePermissionsUseCase {
	return &ManagePermissionsUseCase{permRepo: permRepo}
}

// List returns the records for origin, or every record when origin is empty.
func (uc *ManagePermissionsUseCase) List(ctx context.Context, origin string) ([]*entity.PermissionRecord, error) {
	if origin == "" {
		records, err := uc.permRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list permissions: %w", err)
		}
		return records, nil
	}
	records, err := uc.permRepo.GetAll(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("list permissions for %s: %w", origin, err)
	}
	return records, nil
}

// ClearInput selects what Clear removes. An empty Origin clears everything;
// Type narrows an origin to one permission.
type ClearInput struct {
	Origin string
	Type   entity.PermissionType
}

// Clear removes stored decisions and returns how many were removed.
func (uc *ManagePermissionsUseCase) Clear(ctx context.Context, in ClearInput) (int64, error) {
	log := logging.FromContext(ctx)

	switch {
	case in.Origin == "" && in.Type != "":
		return 0, fmt.Errorf("clear permissions: a type requires an origin")
	case in.Origin == "":
		n, err := uc.permRepo.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("clear permissions: %w", err)
		}
		log.Info().Int64("removed", n).Msg("cleared all stored permissions")
		return n, nil
	case in.Type == "":
		n, err := uc.permRepo.DeleteOrigin(ctx, in.Origin)
		if err != nil {
			return 0, fmt.Errorf("clear permissions for %s: %w", in.Origin, err)
		}
		log.Info().Str("origin", in.Origin).Int64("removed", n).Msg("cleared stored permissions")
		return n, nil
	}

	record, err := uc.permRepo.Get(ctx, in.Origin, in.Type)
	if err != nil {
		return 0, fmt.Errorf("clear %s for %s: %w", in.Type, in.Origin, err)
	}
	if record == nil {
		return 0, nil
	}
	if err := uc.permRepo.Delete(ctx, in.Origin, in.Type); err != nil {
		return 0, fmt.Errorf("clear %s for %s: %w", in.Type, in.Origin, err)
	}
	return 1, nil
}

package cache

import (
	"context"

	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
)

// DefaultPermissionCapacity bounds the decisions kept in memory.
const DefaultPermissionCapacity = 256

type permissionKey struct {
	origin string
	kind   entity.PermissionType
}

// permissionRepo answers Get from memory. A cached nil records that no
// decision is stored. Writes go to the wrapped repository first and only
// then update the cache.
type permissionRepo struct {
	next  repository.PermissionRepository
	cache *LRU[permissionKey, *entity.PermissionRecord]
}

var _ repository.PermissionRepository = (*permissionRepo)(nil)

// NewPermissionRepository wraps next with a read-through cache of capacity
// decisions.
func NewPermissionRepository(next repository.PermissionRepository, capacity int) repository.PermissionRepository {
	return &permissionRepo{
		next:  next,
		cache: NewLRU[permissionKey, *entity.PermissionRecord](capacity),
	}
}

func (r *permissionRepo) Get(ctx context.Context, origin string, permType entity.PermissionType) (*entity.PermissionRecord, error) {
	key := permissionKey{origin: origin, kind: permType}
	if rec, ok := r.cache.Get(key); ok {
		return copyRecord(rec), nil
	}

	rec, err := r.next.Get(ctx, origin, permType)
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, copyRecord(rec))
	return rec, nil
}

func (r *permissionRepo) Set(ctx context.Context, record *entity.PermissionRecord) error {
	if err := r.next.Set(ctx, record); err != nil {
		r.cache.Remove(permissionKey{origin: record.Origin, kind: record.Type})
		return err
	}
	r.cache.Set(permissionKey{origin: record.Origin, kind: record.Type}, copyRecord(record))
	return nil
}

func (r *permissionRepo) Delete(ctx context.Context, origin string, permType entity.PermissionType) error {
	defer r.cache.Remove(permissionKey{origin: origin, kind: permType})
	return r.next.Delete(ctx, origin, permType)
}

func (r *permissionRepo) GetAll(ctx context.Context, origin string) ([]*entity.PermissionRecord, error) {
	return r.next.GetAll(ctx, origin)
}

func (r *permissionRepo) List(ctx context.Context) ([]*entity.PermissionRecord, error) {
	return r.next.List(ctx)
}

func (r *permissionRepo) DeleteOrigin(ctx context.Context, origin string) (int64, error) {
	defer r.cache.RemoveFunc(func(k permissionKey) bool { return k.origin == origin })
	return r.next.DeleteOrigin(ctx, origin)
}

func (r *permissionRepo) DeleteAll(ctx context.Context) (int64, error) {
	defer r.cache.Clear()
	return r.next.DeleteAll(ctx)
}

func copyRecord(rec *entity.PermissionRecord) *entity.PermissionRecord {
	if rec == nil {
		return nil
	}
	c := *rec
	return &c
}

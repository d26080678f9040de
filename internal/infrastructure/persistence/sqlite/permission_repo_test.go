package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubytes/appplatform/internal/domain/entity"
	"github.com/ubytes/appplatform/internal/domain/repository"
	"github.com/ubytes/appplatform/internal/infrastructure/persistence/sqlite"
)

func newTestPermissionRepo(t *testing.T) repository.PermissionRepository {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "permissions.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return sqlite.NewPermissionRepository(db)
}

func record(origin string, permType entity.PermissionType, decision entity.PermissionDecision) *entity.PermissionRecord {
	return &entity.PermissionRecord{Origin: origin, Type: permType, Decision: decision, UpdatedAt: 1700000000}
}

func TestPermissionRepo_GetMissing(t *testing.T) {
	repo := newTestPermissionRepo(t)

	got, err := repo.Get(testCtx(), "https://a.example", entity.PermissionTypeCamera)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPermissionRepo_SetUpserts(t *testing.T) {
	ctx := testCtx()
	repo := newTestPermissionRepo(t)

	require.NoError(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeCamera, entity.PermissionGranted)))
	require.NoError(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeCamera, entity.PermissionDenied)))

	got, err := repo.Get(ctx, "https://a.example", entity.PermissionTypeCamera)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.PermissionDenied, got.Decision)
	assert.Equal(t, int64(1700000000), got.UpdatedAt)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPermissionRepo_SetRejects(t *testing.T) {
	ctx := testCtx()
	repo := newTestPermissionRepo(t)

	assert.Error(t, repo.Set(ctx, nil))
	assert.Error(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeCamera, entity.PermissionPrompt)))
}

func TestPermissionRepo_ListAndDelete(t *testing.T) {
	ctx := testCtx()
	repo := newTestPermissionRepo(t)

	require.NoError(t, repo.Set(ctx, record("https://b.example", entity.PermissionTypeMicrophone, entity.PermissionDenied)))
	require.NoError(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeGeolocation, entity.PermissionGranted)))
	require.NoError(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeCamera, entity.PermissionGranted)))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "https://a.example", all[0].Origin)
	assert.Equal(t, entity.PermissionTypeCamera, all[0].Type)
	assert.Equal(t, "https://b.example", all[2].Origin)

	forA, err := repo.GetAll(ctx, "https://a.example")
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	require.NoError(t, repo.Delete(ctx, "https://a.example", entity.PermissionTypeCamera))
	got, err := repo.Get(ctx, "https://a.example", entity.PermissionTypeCamera)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := repo.DeleteOrigin(ctx, "https://a.example")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLazyPermissionRepo_OpensOnFirstUse(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "permissions.sqlite"))
	t.Cleanup(func() { _ = lazy.Close() })
	repo := sqlite.NewLazyPermissionRepository(lazy)

	assert.False(t, lazy.IsInitialized())

	require.NoError(t, repo.Set(ctx, record("https://a.example", entity.PermissionTypeNotifications, entity.PermissionGranted)))
	assert.True(t, lazy.IsInitialized())

	got, err := repo.Get(ctx, "https://a.example", entity.PermissionTypeNotifications)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsGranted())
}

func TestMigrations_Version(t *testing.T) {
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "permissions.sqlite"))
	require.NoError(t, err)
	defer func() { _ = sqlite.Close(db) }()

	version, err := sqlite.SchemaVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

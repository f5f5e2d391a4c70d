package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/substyle/substyle/internal/domain/entity"
	"github.com/substyle/substyle/internal/domain/repository"
)

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func newTestRepo(t *testing.T) repository.StyleProfileRepository {
	t.Helper()
	ctx := testContext()

	db, err := NewConnection(ctx, filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStyleProfileRepository(db)
}

func TestProfileRepo_SaveAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	style := entity.DefaultSubtitleStyle()
	style.FontFamily = "Oswald, sans-serif"
	style.FontWeight = 600

	profile := entity.NewStyleProfile("Bold Captions", style)
	require.NoError(t, repo.Save(ctx, profile))

	found, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Bold Captions", found.Name)
	assert.Equal(t, "Oswald, sans-serif", found.Style.FontFamily)
	assert.Equal(t, 600, found.Style.FontWeight)
	assert.WithinDuration(t, profile.CreatedAt, found.CreatedAt, time.Second)

	byName, err := repo.FindByName(ctx, "Bold Captions")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, profile.ID, byName.ID)
}

func TestProfileRepo_FindMissingReturnsNil(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	found, err := repo.FindByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByName(ctx, "no such name")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProfileRepo_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	profile := entity.NewStyleProfile("Draft", entity.DefaultSubtitleStyle())
	require.NoError(t, repo.Save(ctx, profile))

	profile.Name = "Final"
	profile.Style.FontSize = 56
	profile.Touch()
	require.NoError(t, repo.Update(ctx, profile))

	found, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Final", found.Name)
	assert.Equal(t, 56.0, found.Style.FontSize)
}

func TestProfileRepo_Update_MissingProfile(t *testing.T) {
	repo := newTestRepo(t)

	ghost := entity.NewStyleProfile("Ghost", entity.DefaultSubtitleStyle())
	err := repo.Update(testContext(), ghost)
	require.Error(t, err)
}

func TestProfileRepo_GetAll_OrderedByUpdatedAt(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	older := entity.NewStyleProfile("Older", entity.DefaultSubtitleStyle())
	older.CreatedAt = older.CreatedAt.Add(-2 * time.Hour)
	older.UpdatedAt = older.UpdatedAt.Add(-2 * time.Hour)
	require.NoError(t, repo.Save(ctx, older))

	newer := entity.NewStyleProfile("Newer", entity.DefaultSubtitleStyle())
	require.NoError(t, repo.Save(ctx, newer))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Newer", all[0].Name)
	assert.Equal(t, "Older", all[1].Name)
}

func TestProfileRepo_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	profile := entity.NewStyleProfile("Doomed", entity.DefaultSubtitleStyle())
	require.NoError(t, repo.Save(ctx, profile))
	require.NoError(t, repo.Delete(ctx, profile.ID))

	found, err := repo.FindByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProfileRepo_DuplicateNameRejected(t *testing.T) {
	repo := newTestRepo(t)
	ctx := testContext()

	require.NoError(t, repo.Save(ctx, entity.NewStyleProfile("Same", entity.DefaultSubtitleStyle())))
	err := repo.Save(ctx, entity.NewStyleProfile("Same", entity.DefaultSubtitleStyle()))
	require.Error(t, err, "name column is UNIQUE")
}

package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/sightings/usecase"
	platformdb "sighting_backend/internal/platform/db"
	"sighting_backend/internal/shared/apperror"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := platformdb.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, platformdb.AutoMigrate(db), "failed to migrate tables")

	return db
}

// seedUser はテスト用のユーザーを作成します。
func seedUser(t *testing.T, db *gorm.DB, name, email string) *platformdb.UserModel {
	t.Helper()

	u := &platformdb.UserModel{Name: name, Email: email}
	require.NoError(t, db.Create(u).Error, "failed to seed user")
	return u
}

func newSighting(userID uint, desc string) entity.NewSighting {
	return entity.NewSighting{
		Description: desc,
		Location:    "Central Park",
		DateTime:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		UserID:      userID,
	}
}

func TestNewSightingRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewSightingRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestSightingGorm_Create(t *testing.T) {
	t.Run("successful creation returns observer summary", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")

		s, err := repo.Create(context.Background(), newSighting(u.ID, "red fox"))

		require.NoError(t, err)
		assert.NotZero(t, s.ID, "ID is not set")
		assert.Equal(t, "red fox", s.Description)
		assert.Equal(t, u.ID, s.UserID)
		assert.False(t, s.CreatedAt.IsZero(), "CreatedAt is not set")
		require.NotNil(t, s.User, "observer summary is not loaded")
		assert.Equal(t, "Alice", s.User.Name)
		assert.Equal(t, "alice@example.com", s.User.Email)
	})

	t.Run("unknown user is a conflict and nothing is persisted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)

		s, err := repo.Create(context.Background(), newSighting(999, "ghost"))

		assert.Nil(t, s)
		assert.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
		assert.Equal(t, usecase.MsgInvalidUserID, apperror.Message(err))

		var count int64
		require.NoError(t, db.Model(&platformdb.SightingModel{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("dateTime round-trips to the same instant", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")

		in := newSighting(u.ID, "heron")
		in.DateTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("JST", 9*60*60))
		created, err := repo.Create(context.Background(), in)
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, in.DateTime.Equal(found.DateTime), "want %v, got %v", in.DateTime, found.DateTime)
	})
}

func TestSightingGorm_List(t *testing.T) {
	t.Run("newest first with observer summaries", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		alice := seedUser(t, db, "Alice", "alice@example.com")
		bob := seedUser(t, db, "Bob", "bob@example.com")

		first, err := repo.Create(context.Background(), newSighting(alice.ID, "first"))
		require.NoError(t, err)
		second, err := repo.Create(context.Background(), newSighting(bob.ID, "second"))
		require.NoError(t, err)
		third, err := repo.Create(context.Background(), newSighting(alice.ID, "third"))
		require.NoError(t, err)

		list, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uint{third.ID, second.ID, first.ID}, []uint{list[0].ID, list[1].ID, list[2].ID})
		require.NotNil(t, list[1].User)
		assert.Equal(t, "Bob", list[1].User.Name)
	})

	t.Run("ordering follows createdAt, not insertion", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")

		base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		old := &platformdb.SightingModel{Description: "old", Location: "x", DateTime: base, UserID: u.ID, CreatedAt: base}
		recent := &platformdb.SightingModel{Description: "recent", Location: "x", DateTime: base, UserID: u.ID, CreatedAt: base.Add(time.Hour)}
		require.NoError(t, db.Create(recent).Error)
		require.NoError(t, db.Create(old).Error)

		list, err := repo.List(context.Background())

		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "recent", list[0].Description)
		assert.Equal(t, "old", list[1].Description)
	})

	t.Run("empty table returns empty slice", func(t *testing.T) {
		repo := NewSightingRepository(setupTestDB(t))

		list, err := repo.List(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestSightingGorm_FindByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := NewSightingRepository(setupTestDB(t))

		s, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, s)
		assert.ErrorIs(t, err, usecase.ErrSightingNotFound)
	})
}

func TestSightingGorm_Update(t *testing.T) {
	t.Run("partial update changes only the supplied field", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")
		created, err := repo.Create(context.Background(), newSighting(u.ID, "red fox"))
		require.NoError(t, err)

		loc := "New Place"
		updated, err := repo.Update(context.Background(), created.ID, entity.SightingPatch{Location: &loc})

		require.NoError(t, err)
		assert.Equal(t, "New Place", updated.Location)
		assert.Equal(t, created.Description, updated.Description)
		assert.True(t, created.DateTime.Equal(updated.DateTime))
		assert.Equal(t, created.UserID, updated.UserID)
	})

	t.Run("reassigns observer", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		alice := seedUser(t, db, "Alice", "alice@example.com")
		bob := seedUser(t, db, "Bob", "bob@example.com")
		created, err := repo.Create(context.Background(), newSighting(alice.ID, "owl"))
		require.NoError(t, err)

		updated, err := repo.Update(context.Background(), created.ID, entity.SightingPatch{UserID: &bob.ID})

		require.NoError(t, err)
		assert.Equal(t, bob.ID, updated.UserID)
		require.NotNil(t, updated.User)
		assert.Equal(t, "Bob", updated.User.Name)
	})

	t.Run("dangling observer is a conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")
		created, err := repo.Create(context.Background(), newSighting(u.ID, "owl"))
		require.NoError(t, err)

		missing := uint(999)
		_, err = repo.Update(context.Background(), created.ID, entity.SightingPatch{UserID: &missing})

		assert.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
	})

	t.Run("missing sighting is not found", func(t *testing.T) {
		repo := NewSightingRepository(setupTestDB(t))

		desc := "x"
		s, err := repo.Update(context.Background(), 42, entity.SightingPatch{Description: &desc})

		assert.Nil(t, s)
		assert.ErrorIs(t, err, usecase.ErrSightingNotFound)
	})

	t.Run("empty patch returns current state", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")
		created, err := repo.Create(context.Background(), newSighting(u.ID, "owl"))
		require.NoError(t, err)

		got, err := repo.Update(context.Background(), created.ID, entity.SightingPatch{})

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "owl", got.Description)
	})
}

func TestSightingGorm_Delete(t *testing.T) {
	t.Run("removes the sighting", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewSightingRepository(db)
		u := seedUser(t, db, "Alice", "alice@example.com")
		created, err := repo.Create(context.Background(), newSighting(u.ID, "owl"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(context.Background(), created.ID))

		_, err = repo.FindByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, usecase.ErrSightingNotFound)

		var owners int64
		require.NoError(t, db.Model(&platformdb.UserModel{}).Count(&owners).Error)
		assert.Equal(t, int64(1), owners, "owner must survive sighting deletion")
	})

	t.Run("missing sighting is not found", func(t *testing.T) {
		repo := NewSightingRepository(setupTestDB(t))

		err := repo.Delete(context.Background(), 7)

		assert.ErrorIs(t, err, usecase.ErrSightingNotFound)
	})
}

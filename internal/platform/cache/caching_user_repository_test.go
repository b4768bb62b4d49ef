package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sightingentity "sighting_backend/internal/feature/sightings/domain/entity"
	"sighting_backend/internal/feature/users/domain/entity"
	"sighting_backend/internal/feature/users/usecase"
)

// countingUserRepository は呼び出し回数を記録するインメモリのUserRepositoryです。
type countingUserRepository struct {
	users     map[uint]entity.User
	findCalls int
	listCalls int
}

func newCountingUserRepository() *countingUserRepository {
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return &countingUserRepository{users: map[uint]entity.User{
		1: {
			ID: 1, Name: "Alice", Email: "alice@example.com", CreatedAt: at, UpdatedAt: at,
			Sightings: []sightingentity.Sighting{{ID: 7, Description: "owl", Location: "barn", DateTime: at, UserID: 1}},
		},
	}}
}

func (r *countingUserRepository) List(ctx context.Context) ([]entity.User, error) {
	r.listCalls++
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		u.Sightings = nil
		out = append(out, u)
	}
	return out, nil
}

func (r *countingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	r.findCalls++
	u, ok := r.users[id]
	if !ok {
		return nil, usecase.ErrUserNotFound
	}
	return &u, nil
}

func (r *countingUserRepository) Create(ctx context.Context, name, email string) (*entity.User, error) {
	id := uint(len(r.users) + 1)
	u := entity.User{ID: id, Name: name, Email: email}
	r.users[id] = u
	return &u, nil
}

func (r *countingUserRepository) Update(ctx context.Context, id uint, patch entity.UserPatch) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, usecase.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	r.users[id] = u
	return &u, nil
}

func (r *countingUserRepository) Delete(ctx context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return usecase.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

// TestCachingUserRepository_FindByID_ReadThrough は2回目の取得がキャッシュから返されることを検証します。
func TestCachingUserRepository_FindByID_ReadThrough(t *testing.T) {
	t.Parallel()

	mr, rdb := setupMiniredis(t)
	inner := newCountingUserRepository()
	repo := NewCachingUserRepository(rdb, time.Minute, inner)
	ctx := context.Background()

	first, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.findCalls, "second read should be served from cache")
	assert.Equal(t, first.Name, second.Name)
	require.Len(t, second.Sightings, 1)
	assert.Equal(t, "owl", second.Sightings[0].Description)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	assert.True(t, mr.Exists("users:v0:id:1"))
	assert.Equal(t, time.Minute, mr.TTL("users:v0:id:1"))
}

// TestCachingUserRepository_UpdateInvalidates は更新後に古い値が返されないことを検証します。
func TestCachingUserRepository_UpdateInvalidates(t *testing.T) {
	t.Parallel()

	mr, rdb := setupMiniredis(t)
	inner := newCountingUserRepository()
	repo := NewCachingUserRepository(rdb, time.Minute, inner)
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, mr.Set("sightings:v0:list", "[]"))

	name := "Alicia"
	_, err = repo.Update(ctx, 1, entity.UserPatch{Name: &name})
	require.NoError(t, err)

	assert.False(t, mr.Exists("users:v0:list"))
	assert.False(t, mr.Exists("users:v0:id:1"))
	assert.False(t, mr.Exists("sightings:v0:list"), "owner summaries in sighting lists must be refreshed")
	gen, err := mr.Get("cache:generation")
	require.NoError(t, err)
	assert.Equal(t, "1", gen)

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.Name)
	assert.Equal(t, 2, inner.findCalls)
}

// TestCachingUserRepository_DeleteInvalidates は削除後に未検出となることを検証します。
func TestCachingUserRepository_DeleteInvalidates(t *testing.T) {
	t.Parallel()

	_, rdb := setupMiniredis(t)
	repo := NewCachingUserRepository(rdb, time.Minute, newCountingUserRepository())
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, 1))

	_, err = repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

// TestCachingUserRepository_ListAfterCreate は登録後の一覧に新しいユーザーが含まれることを検証します。
func TestCachingUserRepository_ListAfterCreate(t *testing.T) {
	t.Parallel()

	_, rdb := setupMiniredis(t)
	inner := newCountingUserRepository()
	repo := NewCachingUserRepository(rdb, time.Minute, inner)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.listCalls)

	_, err = repo.Create(ctx, "Bob", "bob@example.com")
	require.NoError(t, err)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, 2, inner.listCalls)
}

// TestCachingUserRepository_RedisDown はRedisが停止していても内部リポジトリの結果を返すことを検証します。
func TestCachingUserRepository_RedisDown(t *testing.T) {
	t.Parallel()

	mr, rdb := setupMiniredis(t)
	mr.Close()
	repo := NewCachingUserRepository(rdb, time.Minute, newCountingUserRepository())

	got, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	require.NoError(t, repo.Delete(context.Background(), 1))
}

// blockingUserRepository は最初のFindByIDでスナップショットを取った後、解放されるまで待機します。
type blockingUserRepository struct {
	*countingUserRepository
	loading chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	u, err := r.countingUserRepository.FindByID(ctx, id)
	r.once.Do(func() {
		close(r.loading)
		<-r.release
	})
	return u, err
}

// TestCachingUserRepository_DeleteDuringDetailLoad は詳細の読み込み中に削除されたユーザーが
// キャッシュから返されないことを検証します。
func TestCachingUserRepository_DeleteDuringDetailLoad(t *testing.T) {
	t.Parallel()

	_, rdb := setupMiniredis(t)
	inner := &blockingUserRepository{
		countingUserRepository: newCountingUserRepository(),
		loading:                make(chan struct{}),
		release:                make(chan struct{}),
	}
	repo := NewCachingUserRepository(rdb, time.Minute, inner)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := repo.FindByID(ctx, 1)
		done <- err
	}()

	<-inner.loading
	require.NoError(t, repo.Delete(ctx, 1))
	close(inner.release)
	require.NoError(t, <-done)

	_, err := repo.FindByID(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

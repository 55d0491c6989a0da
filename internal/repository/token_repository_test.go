package repository

import (
	"context"
	"testing"
	"time"

	redisapp "heritage_cms/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedTokenRepo(t *testing.T) (*RedisTokenRepo, redismock.ClientMock) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	repo := NewRedisTokenRepo(&redisapp.Client{Client: db})

	return repo, mock
}

func TestRedisTokenRepo_SaveRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectSet("refresh:admin@example.org:tok-1", "1", time.Hour).SetVal("OK")

	err := repo.SaveRefreshToken(ctx, "admin@example.org", "tok-1", time.Hour)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisTokenRepo_GetRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectGet("refresh:admin@example.org:tok-1").SetVal("1")

	ok, err := repo.GetRefreshToken(ctx, "admin@example.org", "tok-1")

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisTokenRepo_GetRefreshToken_Missing(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectGet("refresh:admin@example.org:unknown").RedisNil()

	ok, err := repo.GetRefreshToken(ctx, "admin@example.org", "unknown")

	require.NoError(t, err, "a missing token is not an error")
	assert.False(t, ok)
}

func TestRedisTokenRepo_DeleteRefreshToken(t *testing.T) {
	ctx := context.Background()
	repo, mock := newMockedTokenRepo(t)

	mock.ExpectDel("refresh:admin@example.org:tok-1").SetVal(1)

	err := repo.DeleteRefreshToken(ctx, "admin@example.org", "tok-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"time"

	redisapp "heritage_cms/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveRefreshToken(ctx context.Context, email, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(email, token), "1", exp).Err()
}

func (r *RedisTokenRepo) GetRefreshToken(ctx context.Context, email, token string) (bool, error) {
	val, err := r.Client.Get(ctx, refreshTokenKey(email, token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	return val == "1", err
}

func (r *RedisTokenRepo) DeleteRefreshToken(ctx context.Context, email, token string) error {
	return r.Client.Del(ctx, refreshTokenKey(email, token)).Err()
}

func refreshTokenKey(email, token string) string {
	return "refresh:" + email + ":" + token
}

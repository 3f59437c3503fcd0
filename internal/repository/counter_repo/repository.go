package counter_repo

import (
	"context"
	"errors"

	"vaultory_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const counterKey = "vaultory:openings:total"

type repo struct {
	rdb *redis.Client
}

// NewCounterRepository - глобальный счетчик открытий на Redis.
// INCR атомарен, поэтому два параллельных открытия никогда
// не получат один и тот же номер
func NewCounterRepository(rdb *redis.Client) repository.CounterRepository {
	return &repo{
		rdb: rdb,
	}
}

// Increment - атомарный инкремент, возвращает новое значение
func (r *repo) Increment(ctx context.Context) (int64, error) {
	return r.rdb.Incr(ctx, counterKey).Result()
}

// SeedIfMissing - выставляет начальное значение, если ключа еще нет.
// SETNX атомарен: при гонке засев выполнит ровно один инстанс,
// уже существующее значение никогда не перезаписывается
func (r *repo) SeedIfMissing(ctx context.Context, value int64) error {
	return r.rdb.SetNX(ctx, counterKey, value, 0).Err()
}

// Current - текущее значение счетчика. 0, если ключа еще нет
func (r *repo) Current(ctx context.Context) (int64, error) {
	val, err := r.rdb.Get(ctx, counterKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

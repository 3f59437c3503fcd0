package drops_repo

import (
	"context"
	"encoding/json"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	dropsKey = "vaultory:drops:recent"
	// Сколько последних дропов храним для начальной загрузки страницы
	maxStored = 100
)

type repo struct {
	rdb *redis.Client
}

func NewDropsRepository(rdb *redis.Client) repository.DropsRepository {
	return &repo{
		rdb: rdb,
	}
}

// Push - добавляет дроп в начало ленты и обрезает ее до maxStored
func (r *repo) Push(ctx context.Context, drop *model.LiveDrop) error {
	raw, err := json.Marshal(drop)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.LPush(ctx, dropsKey, raw)
	pipe.LTrim(ctx, dropsKey, 0, maxStored-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Recent - последние limit дропов, от новых к старым
func (r *repo) Recent(ctx context.Context, limit int) ([]model.LiveDrop, error) {
	if limit <= 0 || limit > maxStored {
		limit = maxStored
	}

	raw, err := r.rdb.LRange(ctx, dropsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	drops := make([]model.LiveDrop, 0, len(raw))
	for _, item := range raw {
		var d model.LiveDrop
		if err := json.Unmarshal([]byte(item), &d); err != nil {
			// Битую запись пропускаем, лента не критична
			continue
		}
		drops = append(drops, d)
	}

	return drops, nil
}

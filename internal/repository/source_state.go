package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/service"
)

const sourceKeyPrefix = "source:"

// SourceStateRepository хранит последнее состояние каждого источника в Redis
type SourceStateRepository struct {
	redisClient *redis.Client
}

func NewSourceStateRepository(redisClient *redis.Client) service.SourceStateRepository {
	return &SourceStateRepository{redisClient: redisClient}
}

func sourceKey(id string) string {
	return sourceKeyPrefix + id
}

// Advance применяет событие к сохраненному состоянию источника и возвращает новое состояние.
// Предыдущее местоположение берется из уже сохраненного снимка.
func (r *SourceStateRepository) Advance(ctx context.Context, event models.UpdateEvent) (*models.SourceState, error) {
	prev, err := r.get(ctx, event.SourceID)
	if err != nil {
		return nil, err
	}

	next := models.Advance(prev, event)
	val, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source state: %w", err)
	}
	if err := r.redisClient.Set(ctx, sourceKey(next.ID), val, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to save source state: %w", err)
	}
	return &next, nil
}

// GetMany возвращает известные состояния для перечисленных источников.
// Источники без сохраненного состояния в результат не попадают.
func (r *SourceStateRepository) GetMany(ctx context.Context, ids []string) (map[string]models.SourceState, error) {
	states := make(map[string]models.SourceState, len(ids))
	if len(ids) == 0 {
		return states, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = sourceKey(id)
	}

	values, err := r.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get source states: %w", err)
	}

	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var state models.SourceState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return nil, fmt.Errorf("failed to unmarshal source state %s: %w", ids[i], err)
		}
		states[state.ID] = state
	}
	return states, nil
}

// Delete удаляет состояние источника; следующее обновление будет первым наблюдением
func (r *SourceStateRepository) Delete(ctx context.Context, id string) error {
	if err := r.redisClient.Del(ctx, sourceKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete source state: %w", err)
	}
	return nil
}

func (r *SourceStateRepository) get(ctx context.Context, id string) (*models.SourceState, error) {
	val, err := r.redisClient.Get(ctx, sourceKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get source state: %w", err)
	}

	state := &models.SourceState{}
	if err := json.Unmarshal(val, state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal source state: %w", err)
	}
	return state, nil
}

package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/publisher"
)

const (
	webhookQueueKey = "proximity_events"
)

// WebhookEvent - структура для данных вебхука
type WebhookEvent struct {
	EventID   uuid.UUID              `json:"event_id"`
	EntityID  string                 `json:"entity_id"`
	Result    models.ProximityResult `json:"result"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewWebhookEvent оборачивает результат в событие вебхука
func NewWebhookEvent(result models.ProximityResult) WebhookEvent {
	return WebhookEvent{
		EventID:   uuid.New(),
		EntityID:  result.EntityID(),
		Result:    result,
		Timestamp: time.Now().UTC(),
	}
}

// RedisWebhookPublisher ставит результаты в очередь Redis для доставки воркером
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

var _ publisher.ResultPublisher = (*RedisWebhookPublisher)(nil)

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, result models.ProximityResult) error {
	payload, err := json.Marshal(NewWebhookEvent(result))
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH кладет событие в левую часть списка, воркер забирает справа
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

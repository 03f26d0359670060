package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/pkg/mqtt"
)

const mqttPublishTimeout = 5 * time.Second

// MQTTClient - часть клиента paho, необходимая для публикации
type MQTTClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

// entityState - сообщение состояния сущности proximity.<zone>
type entityState struct {
	EntityID   string                 `json:"entity_id"`
	State      string                 `json:"state"`
	Attributes models.ProximityResult `json:"attributes"`
	Hidden     bool                   `json:"hidden"`
}

// MQTTPublisher публикует результат как retained-состояние сущности зоны
type MQTTPublisher struct {
	client MQTTClient
	topics mqtt.Topics
	qos    byte
}

// NewMQTTPublisher создает новый MQTTPublisher
func NewMQTTPublisher(client MQTTClient, topics mqtt.Topics, qos byte) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		topics: topics,
		qos:    qos,
	}
}

// Publish публикует состояние сущности в топик зоны
func (p *MQTTPublisher) Publish(ctx context.Context, result models.ProximityResult) error {
	payload, err := json.Marshal(entityState{
		EntityID:   result.EntityID(),
		State:      result.DistanceString(),
		Attributes: result,
		Hidden:     false,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal entity state: %w", err)
	}

	token := p.client.Publish(p.topics.ZoneState(result.Zone), p.qos, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return fmt.Errorf("mqtt publish: %w", ctx.Err())
	case <-time.After(mqttPublishTimeout):
		return fmt.Errorf("mqtt publish: timeout after %v", mqttPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

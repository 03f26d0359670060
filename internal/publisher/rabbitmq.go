package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shenikar/zone_proximity/internal/models"
)

var _ ResultPublisher = (*RabbitPublisher)(nil)

const exchangeName = "proximity.events"

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher публикует результаты в fanout exchange RabbitMQ
type RabbitPublisher struct {
	ch amqpChannel
}

// NewRabbitPublisher открывает канал и объявляет exchange для результатов
func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &RabbitPublisher{ch: ch}, nil
}

// Publish отправляет результат в exchange
func (p *RabbitPublisher) Publish(ctx context.Context, result models.ProximityResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	err = p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Type:        result.EntityID(),
		Timestamp:   result.EvaluatedAt,
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

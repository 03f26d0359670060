// Package ingest принимает состояния источников из MQTT и передает их диспетчеру
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/pkg/mqtt"
)

const (
	subscribeTimeout = 10 * time.Second
	submitTimeout    = 5 * time.Second
)

// Submitter ставит событие в очередь обработки
type Submitter interface {
	Submit(ctx context.Context, event models.UpdateEvent) error
}

// SubscribeClient - часть клиента paho, необходимая для подписки
type SubscribeClient interface {
	SubscribeMultiple(filters map[string]byte, callback pahomqtt.MessageHandler) pahomqtt.Token
}

// Subscriber подписывается на топики состояния отслеживаемых источников
type Subscriber struct {
	topics    mqtt.Topics
	qos       byte
	devices   []string
	submitter Submitter
	logger    *logrus.Logger
	validate  *validator.Validate
	now       func() time.Time
}

func NewSubscriber(topics mqtt.Topics, qos byte, devices []string, submitter Submitter, logger *logrus.Logger) *Subscriber {
	return &Subscriber{
		topics:    topics,
		qos:       qos,
		devices:   devices,
		submitter: submitter,
		logger:    logger,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// Filters возвращает топики подписки, по одному на каждый отслеживаемый источник
func (s *Subscriber) Filters() map[string]byte {
	filters := make(map[string]byte, len(s.devices))
	for _, id := range s.devices {
		filters[s.topics.SourceState(id)] = s.qos
	}
	return filters
}

// Subscribe подписывается на топики источников. Вызывается при каждом подключении к брокеру.
func (s *Subscriber) Subscribe(client SubscribeClient) error {
	token := client.SubscribeMultiple(s.Filters(), s.handleMessage)
	if !token.WaitTimeout(subscribeTimeout) {
		return fmt.Errorf("mqtt subscribe: timeout after %v", subscribeTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe: %w", err)
	}

	s.logger.WithField("sources", len(s.devices)).Info("Subscribed to source state topics")
	return nil
}

// OnConnect - обработчик подключения для mqtt.Options
func (s *Subscriber) OnConnect(client pahomqtt.Client) {
	if err := s.Subscribe(client); err != nil {
		s.logger.WithError(err).Error("Failed to subscribe to source state topics")
	}
}

func (s *Subscriber) handleMessage(_ pahomqtt.Client, msg pahomqtt.Message) {
	log := s.logger.WithField("topic", msg.Topic())

	sourceID, ok := s.topics.SourceIDFromTopic(msg.Topic())
	if !ok {
		log.Warn("Ignoring message on unexpected topic")
		return
	}
	log = log.WithField("source_id", sourceID)

	var payload StatePayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.WithError(err).Warn("Invalid source state message")
		return
	}
	if err := payload.Validate(s.validate); err != nil {
		log.WithError(err).Warn("Source state message failed validation")
		return
	}

	event, err := payload.Event(sourceID, s.now().UTC())
	if err != nil {
		log.WithError(err).Warn("Could not build update event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
	defer cancel()
	if err := s.submitter.Submit(ctx, event); err != nil {
		log.WithError(err).Error("Failed to enqueue update event")
		return
	}
	log.WithField("event_id", event.ID).Debug("Update event enqueued")
}

package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

// ResultPublisher - интерфейс для публикации результата близости во внешние системы
type ResultPublisher interface {
	Publish(ctx context.Context, result models.ProximityResult) error
}

// Sink - именованный получатель результатов
type Sink struct {
	Name      string
	Publisher ResultPublisher
}

// MultiPublisher рассылает результат всем подключенным получателям.
// Ошибка одного получателя не мешает доставке остальным.
type MultiPublisher struct {
	sinks  []Sink
	logger *logrus.Logger
}

// NewMultiPublisher создает новый MultiPublisher
func NewMultiPublisher(logger *logrus.Logger, sinks ...Sink) *MultiPublisher {
	return &MultiPublisher{
		sinks:  sinks,
		logger: logger,
	}
}

// Add подключает еще одного получателя
func (m *MultiPublisher) Add(name string, p ResultPublisher) {
	m.sinks = append(m.sinks, Sink{Name: name, Publisher: p})
}

// Sinks возвращает имена подключенных получателей
func (m *MultiPublisher) Sinks() []string {
	names := make([]string, len(m.sinks))
	for i, s := range m.sinks {
		names[i] = s.Name
	}
	return names
}

// Publish отправляет результат всем получателям и объединяет их ошибки
func (m *MultiPublisher) Publish(ctx context.Context, result models.ProximityResult) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Publisher.Publish(ctx, result); err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"sink":      sink.Name,
				"entity_id": result.EntityID(),
			}).Warn("Failed to publish proximity result")
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name, err))
			continue
		}
		m.logger.WithFields(logrus.Fields{
			"sink":      sink.Name,
			"entity_id": result.EntityID(),
		}).Debug("Proximity result published")
	}
	return errors.Join(errs...)
}

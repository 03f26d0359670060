// Package dispatcher упорядочивает изменения состояний источников:
// обновления и удаления обрабатываются по одному в порядке поступления.
package dispatcher

import (
	"context"
	"errors"
	"sync"

	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/proximity"
	"github.com/sirupsen/logrus"
)

// ErrStopped возвращается из Submit и Remove после остановки диспетчера
var ErrStopped = errors.New("dispatcher stopped")

// UpdateHandler обрабатывает одно событие обновления или удаление источника
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, event models.UpdateEvent) (*proximity.Evaluation, error)
	RemoveSource(ctx context.Context, id string) error
}

// command - элемент очереди. Если removeID не пуст, это удаление источника.
type command struct {
	event    models.UpdateEvent
	removeID string
	reply    chan error
}

// Dispatcher - очередь событий с единственным обработчиком
type Dispatcher struct {
	handler UpdateHandler
	logger  *logrus.Logger
	queue   chan command
	done    chan struct{}
	once    sync.Once
}

// New создает диспетчер с очередью на bufferSize событий
func New(handler UpdateHandler, logger *logrus.Logger, bufferSize int) *Dispatcher {
	if bufferSize < 0 {
		bufferSize = 0
	}
	return &Dispatcher{
		handler: handler,
		logger:  logger,
		queue:   make(chan command, bufferSize),
		done:    make(chan struct{}),
	}
}

// Submit ставит событие в очередь. Блокируется, пока очередь заполнена.
func (d *Dispatcher) Submit(ctx context.Context, event models.UpdateEvent) error {
	return d.enqueue(ctx, command{event: event})
}

// Remove ставит удаление источника в ту же очередь и ждет его выполнения.
// Удаление выполняется после всех обновлений, поставленных раньше.
func (d *Dispatcher) Remove(ctx context.Context, id string) error {
	reply := make(chan error, 1)
	if err := d.enqueue(ctx, command{removeID: id, reply: reply}); err != nil {
		return err
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		select {
		case err := <-reply:
			return err
		default:
			return ErrStopped
		}
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, cmd command) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}

	select {
	case d.queue <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-d.done:
		return ErrStopped
	}
}

// Pending возвращает число команд, ожидающих обработки
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Run обрабатывает очередь до отмены ctx. Ошибки обработчика только логируются.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info("Starting update dispatcher...")
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.WithField("pending", d.Pending()).Info("Stopping update dispatcher.")
			return
		case cmd := <-d.queue:
			if cmd.removeID != "" {
				cmd.reply <- d.remove(ctx, cmd.removeID)
				continue
			}
			d.handle(ctx, cmd.event)
		}
	}
}

func (d *Dispatcher) stop() {
	d.once.Do(func() { close(d.done) })
}

func (d *Dispatcher) handle(ctx context.Context, event models.UpdateEvent) {
	log := d.logger.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"source_id": event.SourceID,
	})

	ev, err := d.handler.HandleUpdate(ctx, event)
	if err != nil {
		log.WithError(err).Error("Failed to handle update event")
		return
	}
	if ev != nil {
		log.WithField("outcome", ev.Outcome).Debug("Update event handled")
	}
}

func (d *Dispatcher) remove(ctx context.Context, id string) error {
	err := d.handler.RemoveSource(ctx, id)
	if err != nil {
		d.logger.WithError(err).WithField("source_id", id).Error("Failed to remove source")
	}
	return err
}

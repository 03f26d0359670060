package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/zone_proximity/internal/config"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/proximity"
	"github.com/shenikar/zone_proximity/internal/publisher"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=proximity.go -destination=mocks/mock_proximity.go -package=mocks

// ErrUntrackedSource возвращается для источников, которых нет в списке devices
var ErrUntrackedSource = errors.New("source is not tracked")

// SourceStateRepository определяет контракт реестра состояний источников
type SourceStateRepository interface {
	Advance(ctx context.Context, event models.UpdateEvent) (*models.SourceState, error)
	GetMany(ctx context.Context, ids []string) (map[string]models.SourceState, error)
	Delete(ctx context.Context, id string) error
}

// ZoneRepository определяет контракт реестра координат зон
type ZoneRepository interface {
	GetZoneLocation(ctx context.Context, name string) (*models.Coordinate, error)
	UpsertZoneLocation(ctx context.Context, name string, location models.Coordinate) error
}

// ResultRepository определяет контракт хранилища результатов (один результат на зону)
type ResultRepository interface {
	SaveResult(ctx context.Context, result *models.ProximityResult) error
	GetResult(ctx context.Context, zone string) (*models.ProximityResult, error)
	GetResultFromCache(ctx context.Context, zone string) (*models.ProximityResult, error)
	SetResultCache(ctx context.Context, result *models.ProximityResult) error
	InvalidateResultCache(ctx context.Context, zone string) error
}

// ProximityService определяет контракт бизнес-логики отслеживания близости
type ProximityService interface {
	HandleUpdate(ctx context.Context, event models.UpdateEvent) (*proximity.Evaluation, error)
	InitResult(ctx context.Context) error
	CurrentResult(ctx context.Context) (*models.ProximityResult, error)
	ListSources(ctx context.Context) ([]models.SourceState, error)
	RemoveSource(ctx context.Context, id string) error
	SetZoneLocation(ctx context.Context, location models.Coordinate) error
	IsTracked(id string) bool
}

type proximityService struct {
	states    SourceStateRepository
	zones     ZoneRepository
	results   ResultRepository
	publisher publisher.ResultPublisher
	cfg       config.Proximity
	logger    *logrus.Logger
	now       func() time.Time
}

func NewProximityService(
	states SourceStateRepository,
	zones ZoneRepository,
	results ResultRepository,
	pub publisher.ResultPublisher,
	cfg config.Proximity,
	logger *logrus.Logger,
) ProximityService {
	return &proximityService{
		states:    states,
		zones:     zones,
		results:   results,
		publisher: pub,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// IsTracked сообщает, входит ли источник в список отслеживаемых
func (s *proximityService) IsTracked(id string) bool {
	return s.cfg.IsTracked(id)
}

// HandleUpdate обрабатывает одно событие обновления источника: сохраняет новое состояние,
// оценивает близость и публикует результат, если он изменился
func (s *proximityService) HandleUpdate(ctx context.Context, event models.UpdateEvent) (*proximity.Evaluation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "proximity",
		"method":    "HandleUpdate",
		"source_id": event.SourceID,
		"event_id":  event.ID,
	})

	if !s.cfg.IsTracked(event.SourceID) {
		log.Warn("Ignoring update from untracked source")
		return nil, fmt.Errorf("service: %w: %s", ErrUntrackedSource, event.SourceID)
	}

	state, err := s.states.Advance(ctx, event)
	if err != nil {
		log.WithError(err).Error("Failed to store source state")
		return nil, fmt.Errorf("service: could not store source state: %w", err)
	}

	zoneLocation, err := s.zones.GetZoneLocation(ctx, s.cfg.Zone)
	if err != nil {
		log.WithError(err).Error("Failed to get zone location")
		return nil, fmt.Errorf("service: could not get zone location: %w", err)
	}
	if zoneLocation == nil {
		log.WithField("zone", s.cfg.Zone).Info("Zone location is unknown, distance cannot be calculated")
	}

	sources, err := s.states.GetMany(ctx, s.cfg.Devices)
	if err != nil {
		log.WithError(err).Error("Failed to get tracked source states")
		return nil, fmt.Errorf("service: could not get source states: %w", err)
	}
	if sources == nil {
		sources = make(map[string]models.SourceState, 1)
	}
	sources[state.ID] = *state

	zone := models.ZoneDefinition{Name: s.cfg.Zone, Location: zoneLocation}
	ev := proximity.Evaluate(state.ID, zone, sources, s.cfg.Overrides, s.cfg.Tolerance)

	log = log.WithFields(logrus.Fields{
		"outcome":          ev.Outcome,
		"devices_compared": ev.DevicesCompared,
		"in_override_zone": ev.InOverrideZone,
	})
	if ev.DeltaMeters != nil {
		log = log.WithField("delta_meters", *ev.DeltaMeters)
	}

	if !ev.Publishable() {
		log.Info("Source is not closest to zone, result unchanged")
		return &ev, nil
	}

	ev.Result.EvaluatedAt = s.now().UTC()
	if err := s.store(ctx, &ev.Result); err != nil {
		log.WithError(err).Error("Failed to save proximity result")
		return &ev, err
	}

	if err := s.publisher.Publish(ctx, ev.Result); err != nil {
		log.WithError(err).Error("Failed to publish proximity result")
		return &ev, fmt.Errorf("service: could not publish result: %w", err)
	}

	log.WithFields(logrus.Fields{
		"dist_from_zone": ev.Result.DistanceString(),
		"dir_of_travel":  ev.Result.Direction,
		"nearest_device": ev.Result.NearestSource,
	}).Info("Proximity result updated")
	return &ev, nil
}

// InitResult публикует текущий результат при старте; если его нет, создает начальный
func (s *proximityService) InitResult(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "proximity",
		"method":  "InitResult",
		"zone":    s.cfg.Zone,
	})

	result, err := s.results.GetResult(ctx, s.cfg.Zone)
	if err != nil {
		log.WithError(err).Error("Failed to get stored proximity result")
		return fmt.Errorf("service: could not get result: %w", err)
	}

	if result == nil {
		initial := models.InitialResult(s.cfg.Zone)
		initial.EvaluatedAt = s.now().UTC()
		if err := s.store(ctx, &initial); err != nil {
			log.WithError(err).Error("Failed to save initial proximity result")
			return err
		}
		result = &initial
		log.Info("Initial proximity result created")
	}

	if err := s.publisher.Publish(ctx, *result); err != nil {
		log.WithError(err).Error("Failed to publish proximity result")
		return fmt.Errorf("service: could not publish result: %w", err)
	}
	return nil
}

// CurrentResult возвращает последний результат для зоны
func (s *proximityService) CurrentResult(ctx context.Context) (*models.ProximityResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "proximity",
		"method":  "CurrentResult",
		"zone":    s.cfg.Zone,
	})

	cached, err := s.results.GetResultFromCache(ctx, s.cfg.Zone)
	if err != nil {
		log.WithError(err).Warn("Failed to read result cache")
	}
	if cached != nil {
		return cached, nil
	}

	result, err := s.results.GetResult(ctx, s.cfg.Zone)
	if err != nil {
		log.WithError(err).Error("Failed to get proximity result")
		return nil, fmt.Errorf("service: could not get result: %w", err)
	}
	if result == nil {
		initial := models.InitialResult(s.cfg.Zone)
		return &initial, nil
	}

	if err := s.results.SetResultCache(ctx, result); err != nil {
		log.WithError(err).Warn("Failed to cache proximity result")
	}
	return result, nil
}

// ListSources возвращает известные состояния отслеживаемых источников, отсортированные по ID
func (s *proximityService) ListSources(ctx context.Context) ([]models.SourceState, error) {
	sources, err := s.states.GetMany(ctx, s.cfg.Devices)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "proximity",
			"method":  "ListSources",
		}).WithError(err).Error("Failed to get source states")
		return nil, fmt.Errorf("service: could not list sources: %w", err)
	}

	list := make([]models.SourceState, 0, len(sources))
	for _, state := range sources {
		list = append(list, state)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// RemoveSource удаляет сохраненное состояние источника.
// Вызывается из очереди dispatcher, чтобы не пересекаться с HandleUpdate.
func (s *proximityService) RemoveSource(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "proximity",
		"method":    "RemoveSource",
		"source_id": id,
	})

	if !s.cfg.IsTracked(id) {
		return fmt.Errorf("service: %w: %s", ErrUntrackedSource, id)
	}
	if err := s.states.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete source state")
		return fmt.Errorf("service: could not delete source state: %w", err)
	}

	log.Info("Source state removed")
	return nil
}

// SetZoneLocation обновляет координаты отслеживаемой зоны
func (s *proximityService) SetZoneLocation(ctx context.Context, location models.Coordinate) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "proximity",
		"method":    "SetZoneLocation",
		"zone":      s.cfg.Zone,
		"latitude":  location.Latitude,
		"longitude": location.Longitude,
	})

	if err := s.zones.UpsertZoneLocation(ctx, s.cfg.Zone, location); err != nil {
		log.WithError(err).Error("Failed to update zone location")
		return fmt.Errorf("service: could not update zone location: %w", err)
	}
	if err := s.results.InvalidateResultCache(ctx, s.cfg.Zone); err != nil {
		log.WithError(err).Warn("Failed to invalidate result cache")
	}

	log.Info("Zone location updated")
	return nil
}

// store перезаписывает результат зоны в хранилище и обновляет кеш
func (s *proximityService) store(ctx context.Context, result *models.ProximityResult) error {
	if err := s.results.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("service: could not save result: %w", err)
	}
	if err := s.results.SetResultCache(ctx, result); err != nil {
		s.logger.WithError(err).WithField("zone", result.Zone).Warn("Failed to cache proximity result")
	}
	return nil
}

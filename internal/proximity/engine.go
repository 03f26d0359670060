package proximity

import (
	"github.com/shenikar/zone_proximity/internal/geo"
	"github.com/shenikar/zone_proximity/internal/models"
)

// Outcome - итог оценки близости
type Outcome string

const (
	// OutcomeUpdated - вычислен новый результат для публикации
	OutcomeUpdated Outcome = "updated"
	// OutcomeArrived - один из источников находится в зоне
	OutcomeArrived Outcome = "arrived"
	// OutcomeNotClosest - источник не ближайший, опубликованный результат не меняется
	OutcomeNotClosest Outcome = "not_closest"
)

// Evaluation - результат одного вызова Evaluate вместе с деталями принятого решения
type Evaluation struct {
	Outcome         Outcome
	Result          models.ProximityResult
	DevicesCompared int
	InOverrideZone  bool
	Closest         bool
	// DeltaMeters - изменение расстояния до зоны, если направление удалось вычислить
	DeltaMeters *float64
}

// Publishable сообщает, нужно ли заменить опубликованный результат
func (e Evaluation) Publishable() bool {
	return e.Outcome != OutcomeNotClosest
}

// Evaluate вычисляет результат близости для обновленного источника.
// Функция чистая: не выполняет ввод-вывод и возвращает результат для любых входных данных.
// sources содержит текущие снимки всех отслеживаемых источников, включая обновленный.
func Evaluate(
	updatedID string,
	zone models.ZoneDefinition,
	sources map[string]models.SourceState,
	overrides models.OverrideZoneSet,
	toleranceMeters float64,
) Evaluation {
	source, ok := sources[updatedID]
	if !ok {
		source = models.SourceState{ID: updatedID}
	}

	for _, s := range sources {
		if s.InZone(zone.Name) {
			return Evaluation{
				Outcome: OutcomeArrived,
				Result: models.ProximityResult{
					Zone:          zone.Name,
					DistanceKm:    float64Ptr(0),
					Direction:     models.DirectionArrived,
					NearestSource: models.NearestNotApplicable,
				},
			}
		}
	}

	ev := Evaluation{InOverrideZone: overrides.Contains(source.ReportedZone)}

	distance, known := distanceKmTo(zone.Location, source.Location)

	ev.Closest = known
	for id, peer := range sources {
		if id == updatedID || overrides.Contains(peer.ReportedZone) {
			continue
		}
		peerDistance, ok := distanceKmTo(zone.Location, peer.Location)
		if !ok {
			continue
		}
		ev.DevicesCompared++
		if known && distance >= peerDistance {
			ev.Closest = false
		}
	}

	if !known {
		// источник без координат не вытесняет результат сравнимого соседа
		if ev.DevicesCompared > 0 {
			ev.Outcome = OutcomeNotClosest
			return ev
		}
		ev.Outcome = OutcomeUpdated
		ev.Result = models.ProximityResult{
			Zone:          zone.Name,
			Direction:     models.DirectionUnknown,
			NearestSource: models.NotSet,
		}
		return ev
	}

	if !ev.Closest {
		ev.Outcome = OutcomeNotClosest
		return ev
	}

	// в зоне-исключении движение источника не классифицируется
	direction := models.DirectionNotApplicable
	if !ev.InOverrideZone {
		direction = models.DirectionUnknown
		if delta, ok := travelDelta(*zone.Location, source); ok {
			direction = classify(delta, toleranceMeters)
			ev.DeltaMeters = &delta
		}
	}

	ev.Outcome = OutcomeUpdated
	ev.Result = models.ProximityResult{
		Zone:          zone.Name,
		DistanceKm:    &distance,
		Direction:     direction,
		NearestSource: source.Name(),
	}
	return ev
}

// classify переводит изменение расстояния в направление движения.
// Смещение в пределах допуска считается шумом.
func classify(deltaMeters, toleranceMeters float64) models.Direction {
	switch {
	case deltaMeters <= -toleranceMeters:
		return models.DirectionTowards
	case deltaMeters > toleranceMeters:
		return models.DirectionAwayFrom
	default:
		return models.DirectionCannotCalculate
	}
}

// travelDelta возвращает изменение расстояния до зоны в метрах между предыдущим
// и текущим местоположением источника, округленное до десятых
func travelDelta(zone models.Coordinate, source models.SourceState) (float64, bool) {
	if source.PreviousLocation == nil || source.Location == nil {
		return 0, false
	}
	oldDistance, err := geo.Distance(zone, *source.PreviousLocation)
	if err != nil {
		return 0, false
	}
	newDistance, err := geo.Distance(zone, *source.Location)
	if err != nil {
		return 0, false
	}
	return geo.Round(newDistance-oldDistance, 1), true
}

func distanceKmTo(zone, location *models.Coordinate) (float64, bool) {
	if zone == nil || location == nil {
		return 0, false
	}
	km, err := geo.DistanceKm(*zone, *location)
	if err != nil {
		return 0, false
	}
	return km, true
}

func float64Ptr(v float64) *float64 {
	return &v
}

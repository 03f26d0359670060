package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Direction - направление движения источника относительно зоны
type Direction string

const (
	DirectionTowards         Direction = "towards"
	DirectionAwayFrom        Direction = "away_from"
	DirectionCannotCalculate Direction = "cannot_calculate"
	DirectionUnknown         Direction = "unknown"
	DirectionArrived         Direction = "arrived"
	DirectionNotApplicable   Direction = "not_applicable"
)

const (
	// NotSet - значение расстояния или ближайшего источника, которое еще не вычислено
	NotSet = "not_set"
	// NearestNotApplicable - ближайший источник не определяется, когда кто-то уже в зоне
	NearestNotApplicable = "not_applicable"
	// EntityDomain - префикс идентификатора публикуемой сущности
	EntityDomain = "proximity"
)

// ProximityResult - результат оценки близости для зоны.
// DistanceKm == nil публикуется как "not_set".
type ProximityResult struct {
	Zone          string
	DistanceKm    *float64
	Direction     Direction
	NearestSource string
	EvaluatedAt   time.Time
}

// InitialResult - состояние сущности до первой оценки
func InitialResult(zone string) ProximityResult {
	return ProximityResult{
		Zone:          zone,
		Direction:     DirectionNotApplicable,
		NearestSource: NotSet,
	}
}

// EntityID возвращает идентификатор сущности вида "proximity.<zone>"
func (r ProximityResult) EntityID() string {
	return EntityDomain + "." + r.Zone
}

// DistanceString возвращает расстояние в км в текстовом виде либо "not_set"
func (r ProximityResult) DistanceString() string {
	if r.DistanceKm == nil {
		return NotSet
	}
	return strconv.FormatFloat(*r.DistanceKm, 'f', -1, 64)
}

type proximityResultJSON struct {
	EntityID      string          `json:"entity_id"`
	Zone          string          `json:"zone"`
	DistFromZone  json.RawMessage `json:"dist_from_zone"`
	DirOfTravel   Direction       `json:"dir_of_travel"`
	NearestDevice string          `json:"nearest_device"`
	EvaluatedAt   time.Time       `json:"evaluated_at"`
}

var notSetJSON = []byte(`"` + NotSet + `"`)

// MarshalJSON кодирует результат в формате атрибутов сущности
func (r ProximityResult) MarshalJSON() ([]byte, error) {
	dist := notSetJSON
	if r.DistanceKm != nil {
		dist = []byte(strconv.FormatFloat(*r.DistanceKm, 'f', -1, 64))
	}
	return json.Marshal(proximityResultJSON{
		EntityID:      r.EntityID(),
		Zone:          r.Zone,
		DistFromZone:  dist,
		DirOfTravel:   r.Direction,
		NearestDevice: r.NearestSource,
		EvaluatedAt:   r.EvaluatedAt,
	})
}

// UnmarshalJSON декодирует результат, принимая "not_set" в качестве расстояния
func (r *ProximityResult) UnmarshalJSON(data []byte) error {
	var raw proximityResultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Zone = raw.Zone
	r.Direction = raw.DirOfTravel
	r.NearestSource = raw.NearestDevice
	r.EvaluatedAt = raw.EvaluatedAt
	r.DistanceKm = nil

	dist := bytes.TrimSpace(raw.DistFromZone)
	if len(dist) == 0 || bytes.Equal(dist, notSetJSON) || bytes.Equal(dist, []byte("null")) {
		return nil
	}
	var km float64
	if err := json.Unmarshal(dist, &km); err != nil {
		return fmt.Errorf("invalid dist_from_zone %s: %w", dist, err)
	}
	r.DistanceKm = &km
	return nil
}

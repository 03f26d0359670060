package v1

import (
	"time"
)

// SourceStateRequest DTO для передачи состояния источника
// @Description DTO для передачи состояния источника. Координаты передаются парой или не передаются вовсе.
type SourceStateRequest struct {
	Zone         *string  `json:"zone,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	FriendlyName string   `json:"friendly_name,omitempty" validate:"max=128"`
}

// ZoneLocationRequest DTO для изменения координат зоны
// @Description DTO для изменения координат зоны
type ZoneLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// AcceptedResponse DTO для ответа на принятое событие
// @Description DTO для ответа на принятое событие
type AcceptedResponse struct {
	EventID string `json:"event_id"`
}

// CoordinateResponse DTO координаты
type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ProximityResponse DTO для ответа с результатом близости
// @Description DTO для ответа с результатом близости. dist_from_zone - число в км либо not_set.
type ProximityResponse struct {
	EntityID      string    `json:"entity_id"`
	Zone          string    `json:"zone"`
	DistFromZone  any       `json:"dist_from_zone" swaggertype:"string"`
	DirOfTravel   string    `json:"dir_of_travel"`
	NearestDevice string    `json:"nearest_device"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

// SourceResponse DTO для ответа с состоянием источника
// @Description DTO для ответа с состоянием источника
type SourceResponse struct {
	ID               string              `json:"id"`
	DisplayName      string              `json:"display_name"`
	ReportedZone     *string             `json:"reported_zone"`
	Location         *CoordinateResponse `json:"location"`
	PreviousLocation *CoordinateResponse `json:"previous_location"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

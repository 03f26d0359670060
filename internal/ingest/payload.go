package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/zone_proximity/internal/models"
)

// ErrPartialLocation - в сообщении передана только одна из координат
var ErrPartialLocation = errors.New("latitude and longitude must be set together")

// StatePayload - сообщение о состоянии источника.
// Отсутствующие координаты означают, что местоположение неизвестно.
type StatePayload struct {
	Zone         *string  `json:"zone"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	FriendlyName string   `json:"friendly_name" validate:"max=128"`
}

// Validate проверяет диапазоны координат и их парность
func (p StatePayload) Validate(validate *validator.Validate) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if (p.Latitude == nil) != (p.Longitude == nil) {
		return ErrPartialLocation
	}
	return nil
}

// Event превращает сообщение в событие обновления источника
func (p StatePayload) Event(sourceID string, receivedAt time.Time) (models.UpdateEvent, error) {
	if strings.TrimSpace(sourceID) == "" {
		return models.UpdateEvent{}, fmt.Errorf("source id is empty")
	}

	event := models.UpdateEvent{
		ID:          uuid.New(),
		SourceID:    sourceID,
		DisplayName: strings.TrimSpace(p.FriendlyName),
		ReceivedAt:  receivedAt,
	}
	if p.Zone != nil && *p.Zone != "" {
		zone := *p.Zone
		event.ReportedZone = &zone
	}
	if p.Latitude != nil && p.Longitude != nil {
		event.Location = &models.Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}
	}
	return event, nil
}

package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/zone_proximity/internal/models"
)

// DTOToUpdateEvent преобразует запрос состояния источника в событие обновления
func DTOToUpdateEvent(sourceID string, dto SourceStateRequest, receivedAt time.Time) models.UpdateEvent {
	event := models.UpdateEvent{
		ID:          uuid.New(),
		SourceID:    sourceID,
		DisplayName: dto.FriendlyName,
		ReceivedAt:  receivedAt,
	}
	if dto.Zone != nil && *dto.Zone != "" {
		zone := *dto.Zone
		event.ReportedZone = &zone
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		event.Location = &models.Coordinate{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
	}
	return event
}

// DTOToCoordinate преобразует запрос координат зоны в доменную модель
func DTOToCoordinate(dto ZoneLocationRequest) models.Coordinate {
	return models.Coordinate{Latitude: *dto.Latitude, Longitude: *dto.Longitude}
}

// ModelToProximityResponse преобразует результат близости в DTO для ответа
func ModelToProximityResponse(result *models.ProximityResult) *ProximityResponse {
	var dist any = models.NotSet
	if result.DistanceKm != nil {
		dist = *result.DistanceKm
	}
	return &ProximityResponse{
		EntityID:      result.EntityID(),
		Zone:          result.Zone,
		DistFromZone:  dist,
		DirOfTravel:   string(result.Direction),
		NearestDevice: result.NearestSource,
		EvaluatedAt:   result.EvaluatedAt,
	}
}

func coordinateResponse(c *models.Coordinate) *CoordinateResponse {
	if c == nil {
		return nil
	}
	return &CoordinateResponse{Latitude: c.Latitude, Longitude: c.Longitude}
}

// ModelToSourceResponse преобразует состояние источника в DTO для ответа
func ModelToSourceResponse(state models.SourceState) SourceResponse {
	return SourceResponse{
		ID:               state.ID,
		DisplayName:      state.Name(),
		ReportedZone:     state.ReportedZone,
		Location:         coordinateResponse(state.Location),
		PreviousLocation: coordinateResponse(state.PreviousLocation),
		UpdatedAt:        state.UpdatedAt,
	}
}

// ModelsToSourceResponses преобразует слайс состояний в слайс DTO
func ModelsToSourceResponses(states []models.SourceState) []SourceResponse {
	responses := make([]SourceResponse, len(states))
	for i, state := range states {
		responses[i] = ModelToSourceResponse(state)
	}
	return responses
}

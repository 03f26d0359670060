package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/zone_proximity/internal/config"
	"github.com/shenikar/zone_proximity/internal/dispatcher"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/service"
	"github.com/sirupsen/logrus"
)

// EventSubmitter ставит изменения состояний источников в очередь обработки
type EventSubmitter interface {
	Submit(ctx context.Context, event models.UpdateEvent) error
	Remove(ctx context.Context, id string) error
}

type Handler struct {
	proximityService service.ProximityService
	submitter        EventSubmitter
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
	now              func() time.Time
}

func NewHandler(proximityService service.ProximityService, submitter EventSubmitter, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		proximityService: proximityService,
		submitter:        submitter,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
		now:              time.Now,
	}
}

// @Summary Submit source state
// @Description Enqueue a state update of a tracked source. Requires API key.
// @Tags Sources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Source ID"
// @Param state body SourceStateRequest true "Source state"
// @Success 202 {object} AcceptedResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Source is not tracked"
// @Failure 503 {object} map[string]string "Update queue is not available"
// @Router /sources/{id}/state [post]
func (h *Handler) submitSourceState(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "submitSourceState").WithField("source_id", id)

	if !h.proximityService.IsTracked(id) {
		log.Warn("Update for untracked source")
		c.JSON(http.StatusNotFound, gin.H{"error": "source is not tracked"})
		return
	}

	var input SourceStateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be set together"})
		return
	}

	event := DTOToUpdateEvent(id, input, h.now().UTC())
	if err := h.submitter.Submit(c.Request.Context(), event); err != nil {
		if errors.Is(err, dispatcher.ErrStopped) {
			log.WithError(err).Warn("Update dispatcher is stopped")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "update queue is not available"})
			return
		}
		log.WithError(err).Error("Failed to enqueue update event")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusAccepted, AcceptedResponse{EventID: event.ID.String()})
}

// @Summary Get proximity result
// @Description Get the latest proximity result for the monitored zone. Requires API key.
// @Tags Proximity
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ProximityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /proximity [get]
func (h *Handler) getProximity(c *gin.Context) {
	log := h.logger.WithField("method", "getProximity")

	result, err := h.proximityService.CurrentResult(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get proximity result from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelToProximityResponse(result))
}

// @Summary List tracked sources
// @Description Get the last known state of every tracked source. Requires API key.
// @Tags Sources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} SourceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sources [get]
func (h *Handler) listSources(c *gin.Context) {
	log := h.logger.WithField("method", "listSources")

	sources, err := h.proximityService.ListSources(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list sources from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, ModelsToSourceResponses(sources))
}

// @Summary Remove source state
// @Description Forget the stored state of a tracked source. Requires API key.
// @Tags Sources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Source ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Source is not tracked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Failure 503 {object} map[string]string "Update queue is not available"
// @Router /sources/{id} [delete]
func (h *Handler) deleteSource(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteSource").WithField("source_id", id)

	if !h.proximityService.IsTracked(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "source is not tracked"})
		return
	}

	if err := h.submitter.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrUntrackedSource) {
			c.JSON(http.StatusNotFound, gin.H{"error": "source is not tracked"})
			return
		}
		if errors.Is(err, dispatcher.ErrStopped) {
			log.WithError(err).Warn("Update dispatcher is stopped")
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "update queue is not available"})
			return
		}
		log.WithError(err).Error("Failed to remove source")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove source"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Set zone location
// @Description Set coordinates of the monitored zone. Requires API key.
// @Tags Zone
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body ZoneLocationRequest true "Zone coordinates"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /zone/location [put]
func (h *Handler) setZoneLocation(c *gin.Context) {
	var input ZoneLocationRequest
	log := h.logger.WithField("method", "setZoneLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.proximityService.SetZoneLocation(c.Request.Context(), DTOToCoordinate(input)); err != nil {
		log.WithError(err).Error("Failed to set zone location in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set zone location"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "zone": h.cfg.Proximity.Zone})
}

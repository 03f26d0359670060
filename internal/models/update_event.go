package models

import (
	"time"

	"github.com/google/uuid"
)

// UpdateEvent - событие об изменении состояния отслеживаемого источника
type UpdateEvent struct {
	ID           uuid.UUID   `json:"id"`
	SourceID     string      `json:"source_id"`
	DisplayName  string      `json:"display_name,omitempty"`
	ReportedZone *string     `json:"reported_zone"`
	Location     *Coordinate `json:"location"`
	ReceivedAt   time.Time   `json:"received_at"`
}

package models

import "time"

// SourceState - последний снимок состояния источника вместе с предыдущим местоположением.
// История хранит ровно одно предыдущее значение.
type SourceState struct {
	ID               string      `json:"id"`
	DisplayName      string      `json:"display_name,omitempty"`
	ReportedZone     *string     `json:"reported_zone"`
	Location         *Coordinate `json:"location"`
	PreviousLocation *Coordinate `json:"previous_location"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Name возвращает отображаемое имя источника, либо его идентификатор
func (s SourceState) Name() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return s.ID
}

// InZone сообщает, находится ли источник в зоне с указанным именем
func (s SourceState) InZone(name string) bool {
	return s.ReportedZone != nil && *s.ReportedZone == name
}

// Advance применяет событие к текущему состоянию источника.
// prev == nil означает первое наблюдение: предыдущего местоположения нет.
func Advance(prev *SourceState, event UpdateEvent) SourceState {
	next := SourceState{
		ID:           event.SourceID,
		DisplayName:  event.DisplayName,
		ReportedZone: event.ReportedZone,
		Location:     event.Location,
		UpdatedAt:    event.ReceivedAt,
	}
	if prev != nil {
		next.PreviousLocation = prev.Location
		if next.DisplayName == "" {
			next.DisplayName = prev.DisplayName
		}
	}
	return next
}

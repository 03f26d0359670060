package mqtt

import (
	"fmt"
	"strings"
)

// Topics строит имена топиков сервиса относительно общего префикса.
//
//	topics := mqtt.Topics{Prefix: "proximity"}
//	topics.SourceState("device_tracker.alice") // proximity/source/device_tracker.alice/state
//	topics.ZoneState("home")                   // proximity/home/state
type Topics struct {
	Prefix string
}

// SourceState - топик, в который источник публикует свое состояние
func (t Topics) SourceState(sourceID string) string {
	return fmt.Sprintf("%s/source/%s/state", t.Prefix, sourceID)
}

// ZoneState - топик с опубликованным результатом близости для зоны
func (t Topics) ZoneState(zone string) string {
	return fmt.Sprintf("%s/%s/state", t.Prefix, zone)
}

// SourceIDFromTopic извлекает идентификатор источника из топика SourceState
func (t Topics) SourceIDFromTopic(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, t.Prefix+"/source/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/state")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

package publisher

import (
	"context"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/shenikar/zone_proximity/internal/models"
)

const measurement = "proximity"

// PointWriter - неблокирующая запись точек, реализуется api.WriteAPI
type PointWriter interface {
	WritePoint(point *write.Point)
}

// InfluxPublisher записывает результаты как метрики во InfluxDB
type InfluxPublisher struct {
	writer PointWriter
}

// NewInfluxPublisher создает новый InfluxPublisher
func NewInfluxPublisher(writer PointWriter) *InfluxPublisher {
	return &InfluxPublisher{writer: writer}
}

// Publish записывает точку; запись асинхронная, ошибки приходят через WriteAPI.Errors
func (p *InfluxPublisher) Publish(_ context.Context, result models.ProximityResult) error {
	fields := map[string]interface{}{
		"arrived": result.Direction == models.DirectionArrived,
	}
	if result.DistanceKm != nil {
		fields["dist_from_zone"] = *result.DistanceKm
	}

	ts := result.EvaluatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	p.writer.WritePoint(write.NewPoint(
		measurement,
		map[string]string{
			"zone":           result.Zone,
			"dir_of_travel":  string(result.Direction),
			"nearest_device": result.NearestSource,
		},
		fields,
		ts,
	))
	return nil
}

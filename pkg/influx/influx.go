package influx

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

const pingTimeout = 5 * time.Second

// NewInfluxClient создает клиента InfluxDB и проверяет доступность сервера
func NewInfluxClient(ctx context.Context, url, token string) (influxdb2.Client, error) {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().
			SetBatchSize(50).
			SetFlushInterval(5000),
	)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	healthy, err := client.Ping(pingCtx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("influxdb ping failed: %w", err)
	}
	if !healthy {
		client.Close()
		return nil, fmt.Errorf("influxdb server is not healthy")
	}
	return client, nil
}

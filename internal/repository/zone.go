package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/service"
)

type ZoneRepository struct {
	db *pgxpool.Pool
}

func NewZoneRepository(db *pgxpool.Pool) service.ZoneRepository {
	return &ZoneRepository{db: db}
}

// GetZoneLocation возвращает координаты зоны либо nil, если зона или ее координаты неизвестны
func (r *ZoneRepository) GetZoneLocation(ctx context.Context, name string) (*models.Coordinate, error) {
	query := `
		SELECT latitude, longitude
		FROM zones
		WHERE name = $1;
	`
	var lat, lon *float64
	err := r.db.QueryRow(ctx, query, name).Scan(&lat, &lon)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get zone location: %w", err)
	}

	if lat == nil || lon == nil {
		return nil, nil
	}
	return &models.Coordinate{Latitude: *lat, Longitude: *lon}, nil
}

// UpsertZoneLocation создает зону или обновляет ее координаты
func (r *ZoneRepository) UpsertZoneLocation(ctx context.Context, name string, location models.Coordinate) error {
	query := `
		INSERT INTO zones (name, latitude, longitude, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE SET
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, name, location.Latitude, location.Longitude); err != nil {
		return fmt.Errorf("failed to upsert zone location: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/service"
)

const resultCacheTTL = 5 * time.Minute

type ResultRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewResultRepository(db *pgxpool.Pool, redisClient *redis.Client) service.ResultRepository {
	return &ResultRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// SaveResult перезаписывает результат зоны; для каждой зоны хранится только последний
func (r *ResultRepository) SaveResult(ctx context.Context, result *models.ProximityResult) error {
	query := `
		INSERT INTO proximity_results (zone, dist_from_zone, dir_of_travel, nearest_device, evaluated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (zone) DO UPDATE SET
			dist_from_zone = EXCLUDED.dist_from_zone,
			dir_of_travel = EXCLUDED.dir_of_travel,
			nearest_device = EXCLUDED.nearest_device,
			evaluated_at = EXCLUDED.evaluated_at;
	`
	_, err := r.db.Exec(ctx, query,
		result.Zone,
		result.DistanceKm,
		string(result.Direction),
		result.NearestSource,
		result.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save proximity result: %w", err)
	}
	return nil
}

// GetResult возвращает сохраненный результат зоны либо nil, если его еще нет
func (r *ResultRepository) GetResult(ctx context.Context, zone string) (*models.ProximityResult, error) {
	query := `
		SELECT zone, dist_from_zone, dir_of_travel, nearest_device, evaluated_at
		FROM proximity_results
		WHERE zone = $1;
	`
	result := &models.ProximityResult{}
	var direction string
	err := r.db.QueryRow(ctx, query, zone).Scan(
		&result.Zone,
		&result.DistanceKm,
		&direction,
		&result.NearestSource,
		&result.EvaluatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proximity result: %w", err)
	}
	result.Direction = models.Direction(direction)
	return result, nil
}

func resultKey(zone string) string {
	return fmt.Sprintf("%s:%s", models.EntityDomain, zone)
}

// GetResultFromCache пытается получить результат зоны из Redis
func (r *ResultRepository) GetResultFromCache(ctx context.Context, zone string) (*models.ProximityResult, error) {
	val, err := r.redisClient.Get(ctx, resultKey(zone)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get proximity result from cache: %w", err)
	}

	result := &models.ProximityResult{}
	if err := json.Unmarshal(val, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proximity result from cache: %w", err)
	}
	return result, nil
}

// SetResultCache сохраняет результат зоны в Redis на 5 минут
func (r *ResultRepository) SetResultCache(ctx context.Context, result *models.ProximityResult) error {
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal proximity result for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, resultKey(result.Zone), val, resultCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set proximity result in cache: %w", err)
	}
	return nil
}

// InvalidateResultCache удаляет результат зоны из Redis кэша
func (r *ResultRepository) InvalidateResultCache(ctx context.Context, zone string) error {
	if err := r.redisClient.Del(ctx, resultKey(zone)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate proximity result cache: %w", err)
	}
	return nil
}

package geo

import (
	"errors"
	"math"

	"github.com/shenikar/zone_proximity/internal/models"
)

// EarthRadiusMeters - средний радиус Земли, используемый в формуле гаверсинусов
const EarthRadiusMeters = 6371000

// ErrNonFiniteCoordinate возвращается, если широта или долгота не является конечным числом
var ErrNonFiniteCoordinate = errors.New("coordinate is not a finite number")

// Distance возвращает расстояние по большому кругу между двумя точками в метрах
func Distance(a, b models.Coordinate) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, ErrNonFiniteCoordinate
	}

	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), nil
}

// DistanceKm возвращает расстояние в километрах, округленное до десятых
func DistanceKm(a, b models.Coordinate) (float64, error) {
	meters, err := Distance(a, b)
	if err != nil {
		return 0, err
	}
	return Round(meters/1000, 1), nil
}

// Round округляет значение до заданного числа знаков после запятой
func Round(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

func finite(c models.Coordinate) bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

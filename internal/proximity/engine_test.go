package proximity

import (
	"math"
	"testing"

	"github.com/shenikar/zone_proximity/internal/geo"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var homeZone = models.ZoneDefinition{
	Name:     "home",
	Location: &models.Coordinate{Latitude: 0, Longitude: 0},
}

func coord(lat, lon float64) *models.Coordinate {
	return &models.Coordinate{Latitude: lat, Longitude: lon}
}

func zoneName(name string) *string {
	return &name
}

// eastOfZone возвращает точку на экваторе на заданном расстоянии от (0,0)
func eastOfZone(meters float64) *models.Coordinate {
	metersPerDegree := geo.EarthRadiusMeters * math.Pi / 180
	return coord(0, meters/metersPerDegree)
}

func sourcesOf(states ...models.SourceState) map[string]models.SourceState {
	m := make(map[string]models.SourceState, len(states))
	for _, s := range states {
		m[s.ID] = s
	}
	return m
}

func TestEvaluate_ClosestSourceMovingTowards(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.01), Location: coord(0, 0.005)},
		models.SourceState{ID: "B", Location: coord(0, 0.02)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 10)

	expectedKm, err := geo.DistanceKm(*homeZone.Location, *coord(0, 0.005))
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.True(t, ev.Publishable())
	assert.True(t, ev.Closest)
	assert.Equal(t, 1, ev.DevicesCompared)
	assert.Equal(t, "A", ev.Result.NearestSource)
	assert.Equal(t, models.DirectionTowards, ev.Result.Direction)
	require.NotNil(t, ev.Result.DistanceKm)
	assert.Equal(t, expectedKm, *ev.Result.DistanceKm)
	assert.Equal(t, 0.6, *ev.Result.DistanceKm)
	require.NotNil(t, ev.DeltaMeters)
	assert.Less(t, *ev.DeltaMeters, 0.0)
}

func TestEvaluate_SomeoneHome(t *testing.T) {
	tests := []struct {
		name    string
		updated string
	}{
		{name: "updated source is home", updated: "A"},
		{name: "another source is home", updated: "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := sourcesOf(
				models.SourceState{ID: "A", ReportedZone: zoneName("home"), Location: coord(0, 0)},
				models.SourceState{ID: "B", PreviousLocation: coord(0, 0.5), Location: coord(0, 0.4)},
				models.SourceState{ID: "C"},
			)

			ev := Evaluate(tt.updated, homeZone, sources, models.NewOverrideZoneSet("work"), 50)

			assert.Equal(t, OutcomeArrived, ev.Outcome)
			assert.True(t, ev.Publishable())
			require.NotNil(t, ev.Result.DistanceKm)
			assert.Equal(t, 0.0, *ev.Result.DistanceKm)
			assert.Equal(t, models.DirectionArrived, ev.Result.Direction)
			assert.Equal(t, models.NearestNotApplicable, ev.Result.NearestSource)
		})
	}
}

func TestEvaluate_SomeoneHomeWithUnknownZoneLocation(t *testing.T) {
	zone := models.ZoneDefinition{Name: "home"}
	sources := sourcesOf(models.SourceState{ID: "A", ReportedZone: zoneName("home")})

	ev := Evaluate("A", zone, sources, nil, 50)

	assert.Equal(t, OutcomeArrived, ev.Outcome)
	assert.Equal(t, models.DirectionArrived, ev.Result.Direction)
}

func TestEvaluate_UnknownSourceLocation(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.01)},
		models.SourceState{ID: "B"},
		models.SourceState{ID: "C", ReportedZone: zoneName("work"), Location: coord(0, 0.02)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet("work"), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Nil(t, ev.Result.DistanceKm)
	assert.Equal(t, models.NotSet, ev.Result.DistanceString())
	assert.Equal(t, models.DirectionUnknown, ev.Result.Direction)
	assert.Equal(t, models.NotSet, ev.Result.NearestSource)
	assert.Zero(t, ev.DevicesCompared)
}

func TestEvaluate_UnknownSourceLocationKeepsPeerResult(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.01)},
		models.SourceState{ID: "B", Location: coord(0, 0.02)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
	assert.False(t, ev.Publishable())
	assert.False(t, ev.Closest)
	assert.Equal(t, 1, ev.DevicesCompared)
}

func TestEvaluate_UnknownZoneLocation(t *testing.T) {
	zone := models.ZoneDefinition{Name: "home"}
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.01), Location: coord(0, 0.005)},
	)

	ev := Evaluate("A", zone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Nil(t, ev.Result.DistanceKm)
	assert.Equal(t, models.DirectionUnknown, ev.Result.Direction)
}

func TestEvaluate_UpdatedSourceMissingFromSnapshot(t *testing.T) {
	sources := sourcesOf(models.SourceState{ID: "B"})

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Nil(t, ev.Result.DistanceKm)
	assert.Equal(t, models.DirectionUnknown, ev.Result.Direction)

	sources = sourcesOf(models.SourceState{ID: "B", Location: coord(0, 0.02)})
	ev = Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)
	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
}

func TestEvaluate_SingleSourceIsClosestByDefault(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", DisplayName: "Alice", PreviousLocation: coord(0, 0.01), Location: coord(0, 0.03)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Zero(t, ev.DevicesCompared)
	assert.True(t, ev.Closest)
	assert.Equal(t, "Alice", ev.Result.NearestSource)
	assert.Equal(t, models.DirectionAwayFrom, ev.Result.Direction)
}

func TestEvaluate_NoPreviousLocation(t *testing.T) {
	sources := sourcesOf(models.SourceState{ID: "A", Location: coord(0, 0.01)})

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	require.NotNil(t, ev.Result.DistanceKm)
	assert.Equal(t, 1.1, *ev.Result.DistanceKm)
	assert.Equal(t, models.DirectionUnknown, ev.Result.Direction)
	assert.Equal(t, "A", ev.Result.NearestSource)
	assert.Nil(t, ev.DeltaMeters)
}

func TestEvaluate_NotClosest(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.05), Location: coord(0, 0.04)},
		models.SourceState{ID: "B", Location: coord(0, 0.01)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
	assert.False(t, ev.Publishable())
	assert.False(t, ev.Closest)
	assert.Equal(t, 1, ev.DevicesCompared)
}

func TestEvaluate_TieIsNotClosest(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0, 0.05), Location: coord(0, 0.02)},
		models.SourceState{ID: "B", Location: coord(0.02, 0)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
	assert.Equal(t, 1, ev.DevicesCompared)
}

func TestEvaluate_ClosestMustBeatEveryPeer(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", Location: coord(0, 0.03)},
		models.SourceState{ID: "B", Location: coord(0, 0.05)},
		models.SourceState{ID: "C", Location: coord(0, 0.01)},
		models.SourceState{ID: "D", Location: coord(0, 0.09)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
	assert.Equal(t, 3, ev.DevicesCompared)
}

func TestEvaluate_PeersWithoutLocationAreSkipped(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", Location: coord(0, 0.03)},
		models.SourceState{ID: "B"},
		models.SourceState{ID: "C", ReportedZone: zoneName("shop")},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Zero(t, ev.DevicesCompared)
	assert.Equal(t, "A", ev.Result.NearestSource)
}

func TestEvaluate_OverridePeerExcludedFromComparison(t *testing.T) {
	overrides := models.NewOverrideZoneSet("work")
	sources := sourcesOf(
		models.SourceState{ID: "A", ReportedZone: zoneName("work"), Location: coord(0, 0.01)},
		models.SourceState{ID: "B", PreviousLocation: coord(0, 0.06), Location: coord(0, 0.05)},
	)

	ev := Evaluate("B", homeZone, sources, overrides, 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Zero(t, ev.DevicesCompared)
	assert.Equal(t, "B", ev.Result.NearestSource)
	assert.Equal(t, models.DirectionTowards, ev.Result.Direction)

	// без зоны-исключения A ближе, и B не публикуется
	ev = Evaluate("B", homeZone, sources, models.NewOverrideZoneSet(), 50)
	assert.Equal(t, OutcomeNotClosest, ev.Outcome)
}

func TestEvaluate_MovingSourceInOverrideZoneHasNoDirection(t *testing.T) {
	overrides := models.NewOverrideZoneSet("work")
	sources := sourcesOf(
		models.SourceState{ID: "A", ReportedZone: zoneName("work"), PreviousLocation: coord(0, 0.2), Location: coord(0, 0.1)},
		models.SourceState{ID: "B", Location: coord(0, 0.3)},
	)

	ev := Evaluate("A", homeZone, sources, overrides, 50)

	assert.True(t, ev.InOverrideZone)
	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Equal(t, 1, ev.DevicesCompared)
	assert.NotEqual(t, models.DirectionTowards, ev.Result.Direction)
	assert.Equal(t, models.DirectionNotApplicable, ev.Result.Direction)
	assert.Equal(t, "A", ev.Result.NearestSource)
	require.NotNil(t, ev.Result.DistanceKm)
	assert.Nil(t, ev.DeltaMeters)

	// тот же путь вне зоны-исключения классифицируется как приближение
	ev = Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)
	assert.False(t, ev.InOverrideZone)
	assert.Equal(t, models.DirectionTowards, ev.Result.Direction)
}

func TestEvaluate_ToleranceBoundary(t *testing.T) {
	tests := []struct {
		name        string
		newDistance float64
		expected    models.Direction
		delta       float64
	}{
		{name: "moved 60m closer", newDistance: 940, expected: models.DirectionTowards, delta: -60},
		{name: "moved 40m closer", newDistance: 960, expected: models.DirectionCannotCalculate, delta: -40},
		{name: "moved 60m away", newDistance: 1060, expected: models.DirectionAwayFrom, delta: 60},
		{name: "moved 40m away", newDistance: 1040, expected: models.DirectionCannotCalculate, delta: 40},
		{name: "stationary", newDistance: 1000, expected: models.DirectionCannotCalculate, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := sourcesOf(models.SourceState{
				ID:               "A",
				PreviousLocation: eastOfZone(1000),
				Location:         eastOfZone(tt.newDistance),
			})

			ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

			assert.Equal(t, tt.expected, ev.Result.Direction)
			require.NotNil(t, ev.DeltaMeters)
			assert.InDelta(t, tt.delta, *ev.DeltaMeters, 0.05)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, models.DirectionTowards, classify(-50, 50))
	assert.Equal(t, models.DirectionTowards, classify(-60, 50))
	assert.Equal(t, models.DirectionCannotCalculate, classify(-49.9, 50))
	assert.Equal(t, models.DirectionCannotCalculate, classify(50, 50))
	assert.Equal(t, models.DirectionAwayFrom, classify(50.1, 50))
	assert.Equal(t, models.DirectionTowards, classify(0, 0))
	assert.Equal(t, models.DirectionAwayFrom, classify(0.1, 0))
}

func TestEvaluate_Idempotent(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", PreviousLocation: coord(0.01, 0.01), Location: coord(0.004, 0.004)},
		models.SourceState{ID: "B", Location: coord(0, 0.02)},
		models.SourceState{ID: "C", ReportedZone: zoneName("work"), Location: coord(0, 0.001)},
	)
	overrides := models.NewOverrideZoneSet("work")

	first := Evaluate("A", homeZone, sources, overrides, 50)
	second := Evaluate("A", homeZone, sources, overrides, 50)

	assert.Equal(t, first, second)
}

func TestEvaluate_NonFiniteLocationDegrades(t *testing.T) {
	sources := sourcesOf(
		models.SourceState{ID: "A", Location: coord(math.NaN(), 0)},
		models.SourceState{ID: "B", Location: coord(math.Inf(1), 0.02)},
	)

	ev := Evaluate("A", homeZone, sources, models.NewOverrideZoneSet(), 50)

	assert.Equal(t, OutcomeUpdated, ev.Outcome)
	assert.Nil(t, ev.Result.DistanceKm)
	assert.Equal(t, models.DirectionUnknown, ev.Result.Direction)
}

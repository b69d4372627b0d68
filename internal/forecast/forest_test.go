package forecast

import (
	"testing"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingRows(t *testing.T) []domain.FeatureRow {
	series := []domain.DailyPoint{
		{Date: day(t, "2025-03-03"), Sales: 10},
		{Date: day(t, "2025-03-04"), Sales: 12},
		{Date: day(t, "2025-03-05"), Sales: 9},
		{Date: day(t, "2025-03-06"), Sales: 11},
		{Date: day(t, "2025-03-07"), Sales: 13},
		{Date: day(t, "2025-03-08"), Sales: 20},
		{Date: day(t, "2025-03-09"), Sales: 22},
	}
	return BuildFeatures(series)
}

func TestRandomForestSingleRowPredictsItsTarget(t *testing.T) {
	rows := []domain.FeatureRow{{Day: 5, Month: 3, Weekday: 2, Lag1Sales: 4, Sales: 9}}

	rf := NewRandomForest(DefaultForestConfig())
	require.NoError(t, rf.Fit(rows))

	assert.InDelta(t, 9.0, rf.Predict([]float64{1, 1, 1, 100}), 1e-9)
	assert.InDelta(t, 9.0, rf.Predict([]float64{28, 12, 6, 0}), 1e-9)
}

func TestRandomForestIsReproducible(t *testing.T) {
	rows := trainingRows(t)
	inputs := [][]float64{{10, 3, 0, 22}, {11, 3, 1, 15}, {1, 1, 5, 9}}

	a := NewRandomForest(DefaultForestConfig())
	b := NewRandomForest(DefaultForestConfig())
	require.NoError(t, a.Fit(rows))
	require.NoError(t, b.Fit(rows))

	for _, x := range inputs {
		assert.Equal(t, a.Predict(x), b.Predict(x))
	}
}

func TestRandomForestStaysWithinTrainingRange(t *testing.T) {
	rows := trainingRows(t)
	rf := NewRandomForest(DefaultForestConfig())
	require.NoError(t, rf.Fit(rows))

	for _, x := range [][]float64{{1, 1, 0, 0}, {31, 12, 6, 1000}, {7, 3, 4, 11}} {
		p := rf.Predict(x)
		assert.GreaterOrEqual(t, p, 9.0)
		assert.LessOrEqual(t, p, 22.0)
	}
}

func TestRandomForestFitsSeparableData(t *testing.T) {
	var rows []domain.FeatureRow
	for i := 0; i < 20; i++ {
		sales := 5.0
		if i%2 == 1 {
			sales = 50
		}
		rows = append(rows, domain.FeatureRow{Day: i + 1, Month: 1, Weekday: i % 2, Lag1Sales: 1, Sales: sales})
	}

	rf := NewRandomForest(ForestConfig{Trees: 25, Seed: 7})
	require.NoError(t, rf.Fit(rows))

	assert.Less(t, rf.Predict([]float64{40, 1, 0, 1}), 20.0)
	assert.Greater(t, rf.Predict([]float64{40, 1, 1, 1}), 35.0)
}

func TestRandomForestRejectsEmptyTrainingSet(t *testing.T) {
	rf := NewRandomForest(DefaultForestConfig())
	assert.ErrorIs(t, rf.Fit(nil), ErrNoTrainingData)
	assert.Zero(t, rf.Predict([]float64{1, 1, 1, 1}))
}

package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultPolicy(), opts...)
	require.NoError(t, err)
	return e
}

func milkWeek(t *testing.T) []domain.SaleEvent {
	return []domain.SaleEvent{
		sale(t, "2025-03-03", domain.ProductMilk, 10),
		sale(t, "2025-03-04", domain.ProductMilk, 12),
		sale(t, "2025-03-05", domain.ProductMilk, 9),
		sale(t, "2025-03-06", domain.ProductMilk, 11),
		sale(t, "2025-03-07", domain.ProductMilk, 13),
	}
}

func TestEngineMilkScenario(t *testing.T) {
	events := milkWeek(t)
	require.Len(t, Aggregate(events, domain.ProductMilk), 5)
	require.Len(t, BuildFeatures(Aggregate(events, domain.ProductMilk)), 4)

	outcome, err := newTestEngine(t).Forecast(events, domain.ProductMilk)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeForecast, outcome.Kind)

	f := outcome.Forecast
	assert.Equal(t, domain.ProductMilk, f.Product)
	require.Len(t, f.Points, Horizon)
	for i, pt := range f.Points {
		assert.Equal(t, day(t, "2025-03-08").AddDate(0, 0, i), pt.Date)
	}
	assert.GreaterOrEqual(t, f.AverageDailyDemand, 9.0)
	assert.LessOrEqual(t, f.AverageDailyDemand, 13.0)
	assert.InDelta(t, 3*f.AverageDailyDemand, f.ReorderPoint, 1e-9)
	assert.InDelta(t, math.Sqrt(2*f.AverageDailyDemand*365*50), f.EconomicOrderQuantity, 1e-9)
}

func TestEngineIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	a, err := e.Forecast(milkWeek(t), domain.ProductMilk)
	require.NoError(t, err)
	b, err := e.Forecast(milkWeek(t), domain.ProductMilk)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEngineSingleSaleIsInsufficient(t *testing.T) {
	events := []domain.SaleEvent{sale(t, "2025-03-03", domain.ProductSalt, 2)}

	outcome, err := newTestEngine(t).Forecast(events, domain.ProductSalt)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeInsufficientData, outcome.Kind)
	assert.Equal(t, domain.ProductSalt, outcome.Insufficient.Product)
	assert.Equal(t, domain.ReasonFewSaleDates, outcome.Insufficient.Reason)
	assert.Nil(t, outcome.Forecast)

	rec, err := newTestEngine(t).Recommend(events, domain.ProductSalt, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeInsufficientData, rec.Kind)
}

func TestEngineSameDayEntriesCountAsOneDate(t *testing.T) {
	events := []domain.SaleEvent{
		sale(t, "2025-03-03", domain.ProductSoap, 2),
		sale(t, "2025-03-03", domain.ProductSoap, 5),
	}
	outcome, err := newTestEngine(t).Forecast(events, domain.ProductSoap)
	require.NoError(t, err)
	assert.Equal(t, domain.ReasonFewSaleDates, outcome.Insufficient.Reason)
}

func TestEngineTwoDatesForecastsFromOneRow(t *testing.T) {
	events := []domain.SaleEvent{
		sale(t, "2025-01-01", domain.ProductBread, 4),
		sale(t, "2025-01-03", domain.ProductBread, 6),
	}
	model := &recordingModel{}

	outcome, err := newTestEngine(t, WithModel(func() Regressor { return model })).Forecast(events, domain.ProductBread)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeForecast, outcome.Kind)
	require.Len(t, model.fitted, 1)
	assert.Equal(t, 4.0, model.fitted[0].Lag1Sales)
	assert.Len(t, outcome.Forecast.Points, Horizon)

	// With the random forest a single row predicts its own target every day.
	outcome, err = newTestEngine(t).Forecast(events, domain.ProductBread)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, outcome.Forecast.AverageDailyDemand, 1e-9)
	assert.InDelta(t, 18.0, outcome.Forecast.ReorderPoint, 1e-9)
}

func TestEngineRecommendBoundary(t *testing.T) {
	events := []domain.SaleEvent{
		sale(t, "2025-01-01", domain.ProductBread, 4),
		sale(t, "2025-01-03", domain.ProductBread, 6),
	}
	e := newTestEngine(t)

	atPoint, err := e.Recommend(events, domain.ProductBread, 18)
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeRecommendation, atPoint.Kind)
	assert.False(t, atPoint.Recommendation.ShouldOrderNow)
	assert.Equal(t, 18.0, atPoint.Recommendation.CurrentStock)

	below, err := e.Recommend(events, domain.ProductBread, 17)
	require.NoError(t, err)
	assert.True(t, below.Recommendation.ShouldOrderNow)

	_, err = e.Recommend(events, domain.ProductBread, -3)
	assert.ErrorIs(t, err, ErrInvalidStock)
}

type failingModel struct{}

func (failingModel) Fit([]domain.FeatureRow) error { return errors.New("boom") }
func (failingModel) Predict([]float64) float64     { return 0 }

func TestEngineSurfacesFitFailure(t *testing.T) {
	e := newTestEngine(t, WithModel(func() Regressor { return failingModel{} }))
	_, err := e.Forecast(milkWeek(t), domain.ProductMilk)
	assert.Error(t, err)
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	p := DefaultPolicy()
	p.HoldingCost = 0
	_, err := NewEngine(p)
	assert.Error(t, err)
}

func TestEngineRecommendRejectsInfiniteStock(t *testing.T) {
	_, err := newTestEngine(t).Recommend(milkWeek(t), domain.ProductMilk, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidStock)
}

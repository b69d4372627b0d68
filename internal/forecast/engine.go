package forecast

import (
	"fmt"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

// Engine runs the forecast-and-replenishment pipeline for one product at a time.
// It holds no state between calls: every call rebuilds the series, features and
// model from the snapshot it is given.
type Engine struct {
	policy   Policy
	newModel func() Regressor
}

type Option func(*Engine)

// WithModel replaces the regressor used for each forecast.
func WithModel(newModel func() Regressor) Option {
	return func(e *Engine) { e.newModel = newModel }
}

// WithForest uses a random forest with cfg.
func WithForest(cfg ForestConfig) Option {
	return WithModel(func() Regressor { return NewRandomForest(cfg) })
}

func NewEngine(policy Policy, opts ...Option) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid replenishment policy: %w", err)
	}
	e := &Engine{policy: policy}
	WithForest(DefaultForestConfig())(e)
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Engine) Policy() Policy { return e.policy }

// Forecast produces either an InsufficientData or a Forecast outcome for product.
func (e *Engine) Forecast(events []domain.SaleEvent, product domain.Product) (domain.Outcome, error) {
	series := Aggregate(events, product)
	if len(series) < 2 {
		return domain.NewInsufficient(product, domain.ReasonFewSaleDates), nil
	}

	rows := BuildFeatures(series)
	if len(rows) == 0 {
		return domain.NewInsufficient(product, domain.ReasonNoLagRows), nil
	}

	model := e.newModel()
	if err := model.Fit(rows); err != nil {
		return domain.Outcome{}, fmt.Errorf("fit model for %s: %w", product, err)
	}

	f := domain.Forecast{
		Product: product,
		Points:  Recursive(model, series, Horizon),
	}
	e.policy.Apply(&f)

	return domain.NewForecastOutcome(f), nil
}

// Recommend forecasts product and evaluates the result against currentStock.
// Products that cannot be forecast yield their InsufficientData outcome unchanged.
func (e *Engine) Recommend(events []domain.SaleEvent, product domain.Product, currentStock float64) (domain.Outcome, error) {
	if err := ValidateStock(currentStock); err != nil {
		return domain.Outcome{}, err
	}

	outcome, err := e.Forecast(events, product)
	if err != nil || outcome.Skipped() {
		return outcome, err
	}

	rec, err := e.policy.Evaluate(*outcome.Forecast, currentStock)
	if err != nil {
		return domain.Outcome{}, err
	}
	return domain.NewRecommendationOutcome(rec), nil
}

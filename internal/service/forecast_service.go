package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/config"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/forecast"
	"github.com/andresuchdata/shopkeeper/backend-go/internal/ledger"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrUnknownProduct = errors.New("unknown product")

// SalesSource supplies a read-only snapshot of recorded sales.
type SalesSource interface {
	Snapshot() []domain.SaleEvent
}

// Report is the forecast for every product that has sales in a ledger snapshot.
type Report struct {
	Status      domain.Status    `json:"status"`
	GeneratedAt time.Time        `json:"generated_at"`
	Outcomes    []domain.Outcome `json:"outcomes"`
}

type ForecastService struct {
	engine  *forecast.Engine
	workers int
	now     func() time.Time
}

func NewForecastService(engine *forecast.Engine, workers int) *ForecastService {
	if workers <= 0 {
		workers = 1
	}
	return &ForecastService{engine: engine, workers: workers, now: time.Now}
}

// NewEngine builds a forecast engine from configuration.
func NewEngine(cfg config.ForecastConfig) (*forecast.Engine, error) {
	policy := forecast.Policy{
		LeadTimeDays:       cfg.LeadTimeDays,
		AnnualDemandFactor: cfg.AnnualDemandFactor,
		OrderingCost:       cfg.OrderingCost,
		HoldingCost:        cfg.HoldingCost,
	}
	forest := forecast.DefaultForestConfig()
	if cfg.Trees > 0 {
		forest.Trees = cfg.Trees
	}
	forest.Seed = cfg.Seed

	return forecast.NewEngine(policy, forecast.WithForest(forest))
}

// ForecastAll forecasts every product in src. Products present in stocks get a
// recommendation; the rest get a plain forecast.
func (s *ForecastService) ForecastAll(ctx context.Context, src SalesSource, stocks map[domain.Product]float64) (*Report, error) {
	for product, qty := range stocks {
		if err := forecast.ValidateStock(qty); err != nil {
			return nil, fmt.Errorf("%s: %w", product, err)
		}
	}

	snapshot := src.Snapshot()
	report := &Report{
		Status:      domain.StatusOK,
		GeneratedAt: s.now().UTC(),
		Outcomes:    []domain.Outcome{},
	}
	if len(snapshot) == 0 {
		report.Status = domain.StatusEmptyLedger
		log.Info().Msg("forecast: ledger is empty, nothing to forecast")
		return report, nil
	}

	// Products are listed by their earliest sale date.
	byDate := make([]domain.SaleEvent, len(snapshot))
	copy(byDate, snapshot)
	sort.SliceStable(byDate, func(i, j int) bool { return byDate[i].Date.Before(byDate[j].Date) })
	products := ledger.ProductsOf(byDate)
	outcomes := make([]domain.Outcome, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, product := range products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var stock *float64
			if qty, ok := stocks[product]; ok {
				stock = &qty
			}
			outcome, err := s.run(snapshot, product, stock)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Outcomes = outcomes
	return report, nil
}

// ForecastProduct forecasts a single product; a nil stock yields a plain forecast.
func (s *ForecastService) ForecastProduct(ctx context.Context, src SalesSource, name string, stock *float64) (domain.Outcome, error) {
	product, ok := domain.ParseProduct(name)
	if !ok {
		return domain.Outcome{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
	}
	if err := ctx.Err(); err != nil {
		return domain.Outcome{}, err
	}
	return s.run(src.Snapshot(), product, stock)
}

func (s *ForecastService) run(snapshot []domain.SaleEvent, product domain.Product, stock *float64) (domain.Outcome, error) {
	var (
		outcome domain.Outcome
		err     error
	)
	if stock != nil {
		outcome, err = s.engine.Recommend(snapshot, product, *stock)
	} else {
		outcome, err = s.engine.Forecast(snapshot, product)
	}
	if err != nil {
		log.Error().Err(err).Str("product", string(product)).Msg("forecast: failed")
		return domain.Outcome{}, err
	}

	ev := log.Debug().Str("product", string(product)).Str("kind", string(outcome.Kind))
	if outcome.Skipped() {
		ev = ev.Str("reason", string(outcome.Insufficient.Reason))
	}
	ev.Msg("forecast: product done")

	return outcome, nil
}

package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

const (
	DefaultLeadTimeDays       = 3
	DefaultAnnualDemandFactor = 365
	DefaultOrderingCost       = 50
	DefaultHoldingCost        = 1
)

var ErrInvalidStock = errors.New("current stock must be a finite number >= 0")

// ValidateStock rejects negative, NaN and infinite stock levels.
func ValidateStock(currentStock float64) error {
	if currentStock < 0 || math.IsNaN(currentStock) || math.IsInf(currentStock, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidStock, currentStock)
	}
	return nil
}

// Policy holds the inventory-control constants used to turn a forecast into
// a reorder point and an economic order quantity.
type Policy struct {
	LeadTimeDays       float64
	AnnualDemandFactor float64
	OrderingCost       float64
	HoldingCost        float64
}

func DefaultPolicy() Policy {
	return Policy{
		LeadTimeDays:       DefaultLeadTimeDays,
		AnnualDemandFactor: DefaultAnnualDemandFactor,
		OrderingCost:       DefaultOrderingCost,
		HoldingCost:        DefaultHoldingCost,
	}
}

// Validate rejects constants that would make the formulas meaningless.
func (p Policy) Validate() error {
	switch {
	case p.LeadTimeDays < 0:
		return fmt.Errorf("lead time must not be negative, got %v", p.LeadTimeDays)
	case p.AnnualDemandFactor < 0:
		return fmt.Errorf("annual demand factor must not be negative, got %v", p.AnnualDemandFactor)
	case p.OrderingCost < 0:
		return fmt.Errorf("ordering cost must not be negative, got %v", p.OrderingCost)
	case p.HoldingCost <= 0:
		return fmt.Errorf("holding cost must be positive, got %v", p.HoldingCost)
	}
	return nil
}

// ReorderPoint = average daily demand × lead time.
func (p Policy) ReorderPoint(avgDailyDemand float64) float64 {
	return avgDailyDemand * p.LeadTimeDays
}

// EconomicOrderQuantity = sqrt(2 × D × annual factor × ordering cost / holding cost).
func (p Policy) EconomicOrderQuantity(avgDailyDemand float64) float64 {
	annual := avgDailyDemand * p.AnnualDemandFactor
	return math.Sqrt(math.Max(0, 2*annual*p.OrderingCost/p.HoldingCost))
}

// Apply fills the replenishment fields of f from its points.
func (p Policy) Apply(f *domain.Forecast) {
	f.AverageDailyDemand = AverageDemand(f.Points)
	f.ReorderPoint = p.ReorderPoint(f.AverageDailyDemand)
	f.EconomicOrderQuantity = p.EconomicOrderQuantity(f.AverageDailyDemand)
}

// Evaluate compares currentStock against f's reorder point.
func (p Policy) Evaluate(f domain.Forecast, currentStock float64) (domain.Recommendation, error) {
	if err := ValidateStock(currentStock); err != nil {
		return domain.Recommendation{}, err
	}
	return domain.Recommendation{
		Forecast:       f,
		CurrentStock:   currentStock,
		ShouldOrderNow: ShouldOrder(currentStock, f.ReorderPoint),
	}, nil
}

// ShouldOrder reports whether stock has fallen strictly below the reorder point.
func ShouldOrder(currentStock, reorderPoint float64) bool {
	return currentStock < reorderPoint
}

// AverageDemand is the arithmetic mean of the predicted sales.
func AverageDemand(points []domain.ForecastPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, pt := range points {
		sum += pt.PredictedSales
	}
	return sum / float64(len(points))
}

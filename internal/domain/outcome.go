package domain

// OutcomeKind tags which of the three forecast outcomes a result carries.
type OutcomeKind string

const (
	OutcomeInsufficientData OutcomeKind = "insufficient_data"
	OutcomeForecast         OutcomeKind = "forecast"
	OutcomeRecommendation   OutcomeKind = "recommendation"
)

// InsufficientReason explains why a product was skipped.
type InsufficientReason string

const (
	ReasonFewSaleDates InsufficientReason = "<2 sale dates"
	ReasonNoLagRows    InsufficientReason = "no lag rows"
)

// Status is the informational status attached to a whole forecast report.
type Status string

const (
	StatusOK          Status = "ok"
	StatusEmptyLedger Status = "empty_ledger"
)

// InsufficientData reports that a product could not be forecast.
type InsufficientData struct {
	Product Product            `json:"product"`
	Reason  InsufficientReason `json:"reason"`
}

// Forecast is a 7-day demand forecast together with the replenishment quantities derived from it.
type Forecast struct {
	Product               Product         `json:"product"`
	Points                []ForecastPoint `json:"points"`
	AverageDailyDemand    float64         `json:"average_daily_demand"`
	ReorderPoint          float64         `json:"reorder_point"`
	EconomicOrderQuantity float64         `json:"economic_order_quantity"`
}

// Recommendation is a Forecast evaluated against the shop's current stock.
type Recommendation struct {
	Forecast
	CurrentStock   float64 `json:"current_stock"`
	ShouldOrderNow bool    `json:"should_order_now"`
}

// Outcome holds exactly one of the three variants, selected by Kind.
type Outcome struct {
	Kind           OutcomeKind       `json:"kind"`
	Insufficient   *InsufficientData `json:"insufficient,omitempty"`
	Forecast       *Forecast         `json:"forecast,omitempty"`
	Recommendation *Recommendation   `json:"recommendation,omitempty"`
}

// Product returns the product the outcome is about.
func (o Outcome) Product() Product {
	switch o.Kind {
	case OutcomeInsufficientData:
		return o.Insufficient.Product
	case OutcomeForecast:
		return o.Forecast.Product
	case OutcomeRecommendation:
		return o.Recommendation.Product
	}
	return ""
}

// Skipped reports whether the product was not forecast.
func (o Outcome) Skipped() bool {
	return o.Kind == OutcomeInsufficientData
}

func NewInsufficient(product Product, reason InsufficientReason) Outcome {
	return Outcome{
		Kind:         OutcomeInsufficientData,
		Insufficient: &InsufficientData{Product: product, Reason: reason},
	}
}

func NewForecastOutcome(f Forecast) Outcome {
	return Outcome{Kind: OutcomeForecast, Forecast: &f}
}

func NewRecommendationOutcome(r Recommendation) Outcome {
	return Outcome{Kind: OutcomeRecommendation, Recommendation: &r}
}

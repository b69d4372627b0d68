package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used on every wire and file boundary.
const DateLayout = "2006-01-02"

// SaleEvent is one recorded transaction. Events are immutable once appended to a ledger.
type SaleEvent struct {
	ID         uuid.UUID `json:"id"`
	Date       time.Time `json:"date"`
	Product    Product   `json:"product"`
	Quantity   int       `json:"quantity"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SaleInput is an unvalidated sale as supplied by the entry screen.
type SaleInput struct {
	Date     time.Time
	Product  Product
	Quantity int
}

// DailyPoint is the total quantity sold of one product on one calendar date.
type DailyPoint struct {
	Date  time.Time `json:"date"`
	Sales float64   `json:"sales"`
}

// FeatureRow is one training example for the demand model.
type FeatureRow struct {
	Date      time.Time `json:"date"`
	Day       int       `json:"day"`
	Month     int       `json:"month"`
	Weekday   int       `json:"weekday"`
	Lag1Sales float64   `json:"lag1_sales"`
	Sales     float64   `json:"sales"`
}

// Features returns the regressor inputs in column order: day, month, weekday, lag1.
func (r FeatureRow) Features() []float64 {
	return []float64{float64(r.Day), float64(r.Month), float64(r.Weekday), r.Lag1Sales}
}

// ForecastPoint is one predicted future day.
type ForecastPoint struct {
	Date           time.Time `json:"date"`
	PredictedSales float64   `json:"predicted_sales"`
	// Lag1Sales is the lag value the model was fed to produce this point.
	Lag1Sales float64 `json:"lag1_sales"`
}

// CalendarDate strips the time of day from t, keeping its calendar date in UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekdayIndex returns the weekday with Monday as 0 and Sunday as 6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

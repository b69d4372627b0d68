// Package forecast turns a product's sales history into a short-horizon demand
// forecast and the reorder quantities derived from it.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

// Aggregate sums the quantities of product's events per calendar date and
// returns the totals in ascending date order.
func Aggregate(events []domain.SaleEvent, product domain.Product) []domain.DailyPoint {
	totals := make(map[time.Time]float64)
	for _, e := range events {
		if e.Product != product {
			continue
		}
		totals[domain.CalendarDate(e.Date)] += float64(e.Quantity)
	}

	series := make([]domain.DailyPoint, 0, len(totals))
	for date, sales := range totals {
		series = append(series, domain.DailyPoint{Date: date, Sales: sales})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	return series
}

// BuildFeatures derives one training row per series position after the first.
// The lag is the previous recorded day, not the previous calendar day.
func BuildFeatures(series []domain.DailyPoint) []domain.FeatureRow {
	if len(series) < 2 {
		return nil
	}

	rows := make([]domain.FeatureRow, 0, len(series)-1)
	for i := 1; i < len(series); i++ {
		prev, cur := series[i-1], series[i]
		if math.IsNaN(prev.Sales) || math.IsNaN(cur.Sales) {
			continue
		}
		row := calendarRow(cur.Date, prev.Sales)
		row.Sales = cur.Sales
		rows = append(rows, row)
	}

	return rows
}

func calendarRow(date time.Time, lag float64) domain.FeatureRow {
	return domain.FeatureRow{
		Date:      date,
		Day:       date.Day(),
		Month:     int(date.Month()),
		Weekday:   domain.WeekdayIndex(date),
		Lag1Sales: lag,
	}
}

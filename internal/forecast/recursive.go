package forecast

import (
	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
)

// Horizon is the number of days forecast past the last observed date.
const Horizon = 7

// Recursive predicts horizon consecutive days after the last point of series.
// Day one is fed the last observed sales as its lag; every later day is fed
// the model's own prediction for the day before, so errors compound.
func Recursive(model Regressor, series []domain.DailyPoint, horizon int) []domain.ForecastPoint {
	if len(series) == 0 || horizon <= 0 {
		return nil
	}

	last := series[len(series)-1]
	lag := last.Sales

	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		date := last.Date.AddDate(0, 0, i)
		row := calendarRow(date, lag)
		pred := model.Predict(row.Features())

		points = append(points, domain.ForecastPoint{
			Date:           date,
			PredictedSales: pred,
			Lag1Sales:      lag,
		})
		lag = pred
	}

	return points
}

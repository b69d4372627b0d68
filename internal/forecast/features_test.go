package forecast

import (
	"testing"

	"github.com/andresuchdata/shopkeeper/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsSameDayEntries(t *testing.T) {
	events := []domain.SaleEvent{
		sale(t, "2025-03-04", domain.ProductMilk, 5),
		sale(t, "2025-03-03", domain.ProductMilk, 2),
		sale(t, "2025-03-04", domain.ProductMilk, 7),
		sale(t, "2025-03-04", domain.ProductBread, 100),
		sale(t, "2025-03-03", domain.ProductMilk, 1),
	}

	series := Aggregate(events, domain.ProductMilk)

	require.Len(t, series, 2)
	assert.Equal(t, day(t, "2025-03-03"), series[0].Date)
	assert.Equal(t, 3.0, series[0].Sales)
	assert.Equal(t, day(t, "2025-03-04"), series[1].Date)
	assert.Equal(t, 12.0, series[1].Sales)
}

func TestAggregateUnknownProductIsEmpty(t *testing.T) {
	events := []domain.SaleEvent{sale(t, "2025-03-04", domain.ProductMilk, 5)}
	assert.Empty(t, Aggregate(events, domain.ProductSoap))
	assert.Empty(t, Aggregate(nil, domain.ProductSoap))
}

func TestBuildFeaturesLagFollowsRecordedDaysAcrossGaps(t *testing.T) {
	series := []domain.DailyPoint{
		{Date: day(t, "2025-03-01"), Sales: 4},
		{Date: day(t, "2025-03-02"), Sales: 6},
		{Date: day(t, "2025-03-09"), Sales: 3},
		{Date: day(t, "2025-04-15"), Sales: 8},
	}

	rows := BuildFeatures(series)

	require.Len(t, rows, len(series)-1)
	for i, row := range rows {
		assert.Equal(t, series[i].Sales, row.Lag1Sales, "row %d lag", i)
		assert.Equal(t, series[i+1].Sales, row.Sales, "row %d target", i)
		assert.Equal(t, series[i+1].Date, row.Date)
	}
}

func TestBuildFeaturesCalendarColumns(t *testing.T) {
	// 2025-03-09 is a Sunday, 2025-03-10 a Monday.
	series := []domain.DailyPoint{
		{Date: day(t, "2025-03-09"), Sales: 1},
		{Date: day(t, "2025-03-10"), Sales: 2},
		{Date: day(t, "2025-03-16"), Sales: 3},
	}

	rows := BuildFeatures(series)

	require.Len(t, rows, 2)
	assert.Equal(t, 10, rows[0].Day)
	assert.Equal(t, 3, rows[0].Month)
	assert.Equal(t, 0, rows[0].Weekday)
	assert.Equal(t, 6, rows[1].Weekday)
	assert.Equal(t, []float64{16, 3, 6, 2}, rows[1].Features())
}

func TestBuildFeaturesThresholds(t *testing.T) {
	one := []domain.DailyPoint{{Date: day(t, "2025-03-01"), Sales: 4}}
	assert.Empty(t, BuildFeatures(one))

	two := append(one, domain.DailyPoint{Date: day(t, "2025-03-05"), Sales: 9})
	assert.Len(t, BuildFeatures(two), 1)
}

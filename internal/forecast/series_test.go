package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishwavardhanidumpeti/Smart-Inventory-Management-system/internal/domain"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestBuildDemandSeriesAggregatesSameDay(t *testing.T) {
	records := []domain.SaleRecord{
		{ProductID: 1, Quantity: 3, Type: domain.SaleTypeSale, Date: date(2024, 1, 1, 9)},
		{ProductID: 1, Quantity: 4, Type: domain.SaleTypeSale, Date: date(2024, 1, 1, 17)},
	}

	s := BuildDemandSeries(records)

	require.Len(t, s, 1)
	assert.Equal(t, date(2024, 1, 1, 0), s[0].Date)
	assert.Equal(t, 7.0, s[0].Quantity)
}

func TestBuildDemandSeriesZeroFillsGaps(t *testing.T) {
	records := []domain.SaleRecord{
		{Quantity: 2, Type: domain.SaleTypeSale, Date: date(2024, 1, 3, 12)},
		{Quantity: 5, Type: domain.SaleTypeSale, Date: date(2024, 1, 1, 8)},
	}

	s := BuildDemandSeries(records)

	require.Len(t, s, 3)
	assert.Equal(t, []float64{5, 0, 2}, s.Values())
	assert.Equal(t, date(2024, 1, 2, 0), s[1].Date)
	assert.True(t, s.Contiguous())
	assert.Equal(t, date(2024, 1, 3, 0), s.LastDay())
}

func TestBuildDemandSeriesIgnoresRestocks(t *testing.T) {
	records := []domain.SaleRecord{
		{Quantity: 100, Type: domain.SaleTypeRestock, Date: date(2024, 1, 1, 8)},
		{Quantity: 1, Type: domain.SaleTypeSale, Date: date(2024, 1, 2, 8)},
		{Quantity: 50, Type: domain.SaleTypeRestock, Date: date(2024, 1, 5, 8)},
	}

	s := BuildDemandSeries(records)

	require.Len(t, s, 1)
	assert.Equal(t, 1.0, s[0].Quantity)
}

func TestBuildDemandSeriesEmpty(t *testing.T) {
	assert.Empty(t, BuildDemandSeries(nil))
	assert.True(t, BuildDemandSeries(nil).LastDay().IsZero())
}

func TestBuildDemandSeriesUsesUTCDays(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	records := []domain.SaleRecord{
		// 2024-01-02 03:00 local is still 2024-01-01 in UTC
		{Quantity: 1, Type: domain.SaleTypeSale, Date: time.Date(2024, 1, 2, 3, 0, 0, 0, loc)},
		{Quantity: 1, Type: domain.SaleTypeSale, Date: date(2024, 1, 1, 23)},
	}

	s := BuildDemandSeries(records)

	require.Len(t, s, 1)
	assert.Equal(t, 2.0, s[0].Quantity)
}

func TestEligible(t *testing.T) {
	s := make(Series, 9)
	assert.False(t, Eligible(s, 10))
	assert.False(t, Eligible(s, 0))
	assert.True(t, Eligible(append(s, domain.DemandPoint{}), 10))
	assert.True(t, Eligible(s, 5))
}

func TestNormalizeFillsHandBuiltSeries(t *testing.T) {
	s := Series{
		{Date: date(2024, 2, 3, 0), Quantity: 4},
		{Date: date(2024, 2, 1, 0), Quantity: 1},
	}

	n := s.normalize()

	require.Len(t, n, 3)
	assert.Equal(t, []float64{1, 0, 4}, n.Values())
}

package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresolmos/recurrente/internal/model"
)

func rec(date time.Time, amount float64) model.Record {
	return model.NewRecord(model.Transaction{
		CustomerID: "c1",
		Date:       date,
		Merchant:   "M",
		Amount:     amount,
	})
}

func TestResampleMonthly(t *testing.T) {
	records := []model.Record{
		rec(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 100),
		rec(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 50),
		rec(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 75),
	}

	series := Resample(records, model.CadenceMonthly, false)

	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series[0].Period)
	assert.InDelta(t, 150, series[0].Amount, 1e-9)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), series[1].Period)
	assert.InDelta(t, 75, series[1].Amount, 1e-9)
}

func TestResampleDropsZeroPeriodsByDefault(t *testing.T) {
	records := []model.Record{
		rec(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 100),
		rec(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 200),
	}

	dropped := Resample(records, model.CadenceMonthly, false)
	require.Len(t, dropped, 2)

	kept := Resample(records, model.CadenceMonthly, true)
	require.Len(t, kept, 3)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), kept[1].Period)
	assert.Zero(t, kept[1].Amount)
}

func TestResampleSemimonthlyBinsAnchorAtFirstDate(t *testing.T) {
	first := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	records := []model.Record{
		rec(first, 10),
		rec(first.AddDate(0, 0, 14), 20), // last day of the first bin
		rec(first.AddDate(0, 0, 15), 30), // first day of the second bin
	}

	series := Resample(records, model.CadenceSemimonthly, false)

	require.Len(t, series, 2)
	assert.Equal(t, first, series[0].Period)
	assert.InDelta(t, 30, series[0].Amount, 1e-9)
	assert.Equal(t, first.AddDate(0, 0, 15), series[1].Period)
	assert.InDelta(t, 30, series[1].Amount, 1e-9)
}

func TestResampleWeeklyOrdering(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []model.Record
	for i := 0; i < 30; i++ {
		records = append(records, rec(start.AddDate(0, 0, i), 10))
	}

	series := Resample(records, model.CadenceWeekly, false)

	require.NotEmpty(t, series)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Period.After(series[i-1].Period))
	}
	// 30 daily transactions of 10 fall into 5 weekly bins summing to 300.
	total := 0.0
	for _, point := range series {
		total += point.Amount
	}
	assert.InDelta(t, 300, total, 1e-9)
}

func TestResampleEmptyInput(t *testing.T) {
	assert.Nil(t, Resample(nil, model.CadenceMonthly, false))
}

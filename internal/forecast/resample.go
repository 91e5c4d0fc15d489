package forecast

import (
	"sort"
	"time"

	"github.com/andresolmos/recurrente/internal/model"
)

// Resample aggregates transaction amounts by sum into contiguous cadence
// bins between the first and last observation, ordered by period start.
// When keepZero is false, bins with a non-positive total are dropped from
// the series rather than kept as zero-valued observations.
func Resample(records []model.Record, cadence model.Cadence, keepZero bool) []model.SeriesPoint {
	if len(records) == 0 {
		return nil
	}

	first := records[0].Date
	last := records[0].Date
	for _, record := range records[1:] {
		if record.Date.Before(first) {
			first = record.Date
		}
		if record.Date.After(last) {
			last = record.Date
		}
	}

	series := emptyBins(first, last, cadence)

	for _, record := range records {
		idx := binIndex(series, record.Date)
		series[idx].Amount += record.Amount
	}

	if keepZero {
		return series
	}

	filtered := series[:0]
	for _, point := range series {
		if point.Amount > 0 {
			filtered = append(filtered, point)
		}
	}
	return filtered
}

// emptyBins builds contiguous zero-valued bins covering [first, last].
// Monthly bins start on the first of the calendar month; semi-monthly and
// weekly bins are fixed-width windows anchored at the first transaction's
// calendar date.
func emptyBins(first, last time.Time, cadence model.Cadence) []model.SeriesPoint {
	var anchor time.Time
	if cadence == model.CadenceMonthly {
		anchor = time.Date(first.Year(), first.Month(), 1, 0, 0, 0, 0, first.Location())
	} else {
		anchor = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, first.Location())
	}

	var bins []model.SeriesPoint
	for period := anchor; !period.After(last); period = cadence.Next(period) {
		bins = append(bins, model.SeriesPoint{Period: period})
	}
	return bins
}

// binIndex finds the bin whose period start is the latest one not after
// the date. Bins are contiguous and cover every record date.
func binIndex(series []model.SeriesPoint, date time.Time) int {
	idx := sort.Search(len(series), func(i int) bool {
		return series[i].Period.After(date)
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

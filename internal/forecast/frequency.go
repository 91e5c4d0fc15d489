// Package forecast selects an aggregation cadence from transaction
// density, resamples the series, and orchestrates the next-period spend
// prediction.
package forecast

import (
	"github.com/andresolmos/recurrente/internal/model"
)

// CadenceThresholds holds the mean-transactions-per-month cutoffs used to
// pick an aggregation cadence. These are heuristics, tunable per
// deployment, not invariants.
type CadenceThresholds struct {
	Monthly     float64 // at or below: monthly bins
	Semimonthly float64 // at or below: 15-day bins; above: weekly
}

// DefaultCadenceThresholds returns the standard density cutoffs.
func DefaultCadenceThresholds() CadenceThresholds {
	return CadenceThresholds{
		Monthly:     5,
		Semimonthly: 15,
	}
}

// SelectCadence inspects monthly transaction density and picks a cadence.
// Sparse histories get coarse buckets so aggregated periods are not starved;
// dense histories get finer granularity.
func SelectCadence(records []model.Record, thresholds CadenceThresholds) model.Cadence {
	perMonth := make(map[string]int)
	for _, record := range records {
		perMonth[record.Month]++
	}

	if len(perMonth) == 0 {
		return model.CadenceMonthly
	}

	total := 0
	for _, count := range perMonth {
		total += count
	}
	average := float64(total) / float64(len(perMonth))

	switch {
	case average <= thresholds.Monthly:
		return model.CadenceMonthly
	case average <= thresholds.Semimonthly:
		return model.CadenceSemimonthly
	default:
		return model.CadenceWeekly
	}
}

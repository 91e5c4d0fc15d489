package model

import (
	"fmt"
	"time"
)

// Cadence is the time-bucket width used to aggregate transactions before
// forecasting.
type Cadence string

// Aggregation cadences, chosen from observed transaction density.
const (
	CadenceMonthly     Cadence = "monthly"
	CadenceSemimonthly Cadence = "semimonthly"
	CadenceWeekly      Cadence = "weekly"
)

// Next returns the period start one cadence step past the given one.
func (c Cadence) Next(period time.Time) time.Time {
	switch c {
	case CadenceSemimonthly:
		return period.AddDate(0, 0, 15)
	case CadenceWeekly:
		return period.AddDate(0, 0, 7)
	default:
		return period.AddDate(0, 1, 0)
	}
}

// SeriesPoint is one aggregated observation handed to the forecasting model.
type SeriesPoint struct {
	Period time.Time `json:"ds"`
	Amount float64   `json:"y"`
}

// Forecast is the next-period spend prediction for a customer.
// Variation is nil when the last observed amount is exactly zero, in which
// case the percent change is undefined.
type Forecast struct {
	Variation    *float64 `json:"variacion"`
	Cadence      Cadence  `json:"cadencia"`
	Prediction   float64  `json:"prediccion"`
	Coverage     float64  `json:"coverage"`
	LastObserved float64  `json:"ultimo"`
	Periods      int      `json:"periodos"`
}

// InsufficientDataError reports that a customer's history does not carry
// enough signal to forecast. It is a normal result variant, not a fault.
type InsufficientDataError struct {
	Periods int
	StdDev  float64
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("cannot forecast: insufficient activity or variability (%d periods, std dev %.2f)", e.Periods, e.StdDev)
}

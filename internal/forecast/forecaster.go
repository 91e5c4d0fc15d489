package forecast

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/andresolmos/recurrente/internal/common"
	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/service"
)

// Config holds the forecasting thresholds. Every constant is named so it
// can be tuned per deployment without code changes.
type Config struct {
	Thresholds      CadenceThresholds
	MinPeriods      int           // sufficiency gate: aggregated periods required
	MinStdDev       float64       // sufficiency gate: absolute currency units
	KeepZeroPeriods bool          // keep zero-activity bins as true zeros
	CVInitial       time.Duration // cross-validation initial training window
	CVPeriod        time.Duration // cross-validation rolling period
	CVHorizon       time.Duration // cross-validation horizon
}

// DefaultConfig returns the standard forecasting configuration.
func DefaultConfig() Config {
	return Config{
		Thresholds:      DefaultCadenceThresholds(),
		MinPeriods:      6,
		MinStdDev:       14,
		KeepZeroPeriods: false,
		CVInitial:       180 * 24 * time.Hour,
		CVPeriod:        30 * 24 * time.Hour,
		CVHorizon:       30 * 24 * time.Hour,
	}
}

// Forecaster derives a next-period spend prediction from a customer's
// derived transaction records, delegating model fitting to the injected
// oracle.
type Forecaster struct {
	oracle service.Oracle
	config Config
}

// New creates a forecaster with the default configuration.
func New(oracle service.Oracle) *Forecaster {
	return NewWithConfig(oracle, DefaultConfig())
}

// NewWithConfig creates a forecaster with a custom configuration.
func NewWithConfig(oracle service.Oracle, config Config) *Forecaster {
	return &Forecaster{
		oracle: oracle,
		config: config,
	}
}

// Forecast selects a cadence, resamples the records, applies the
// sufficiency gate, and derives the prediction, variation, and coverage.
// Insufficient history is reported as a *model.InsufficientDataError, a
// normal result variant. Oracle failures are wrapped in common.ErrOracleFit.
func (f *Forecaster) Forecast(ctx context.Context, records []model.Record) (*model.Forecast, error) {
	cadence := SelectCadence(records, f.config.Thresholds)
	series := Resample(records, cadence, f.config.KeepZeroPeriods)

	deviation := stdDev(series)
	if len(series) < f.config.MinPeriods || deviation < f.config.MinStdDev {
		return nil, &model.InsufficientDataError{
			Periods: len(series),
			StdDev:  deviation,
		}
	}

	slog.Debug("Fitting forecast model",
		"cadence", cadence,
		"periods", len(series),
		"std_dev", deviation)

	fitted, err := f.oracle.Fit(ctx, series)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrOracleFit, err)
	}

	predictions, err := fitted.Predict(ctx, 1, cadence)
	if err != nil {
		return nil, fmt.Errorf("%w: predict: %v", common.ErrOracleFit, err)
	}
	if len(predictions) == 0 {
		return nil, fmt.Errorf("%w: predict returned no periods", common.ErrOracleFit)
	}

	// Forecasts must not be negative spend.
	predicted := math.Max(0, predictions[len(predictions)-1].YHat)
	last := series[len(series)-1].Amount

	var variation *float64
	if last != 0 {
		v := round2((predicted - last) / last * 100)
		variation = &v
	}

	folds, err := fitted.CrossValidate(ctx, f.config.CVInitial, f.config.CVPeriod, f.config.CVHorizon)
	if err != nil {
		return nil, fmt.Errorf("%w: cross-validation: %v", common.ErrOracleFit, err)
	}

	return &model.Forecast{
		Prediction:   round2(predicted),
		Variation:    variation,
		Coverage:     round2(meanCoverage(folds) * 100),
		LastObserved: round2(last),
		Cadence:      cadence,
		Periods:      len(series),
	}, nil
}

// stdDev computes the sample standard deviation of the series amounts.
func stdDev(series []model.SeriesPoint) float64 {
	if len(series) < 2 {
		return 0
	}

	mean := 0.0
	for _, point := range series {
		mean += point.Amount
	}
	mean /= float64(len(series))

	sumSq := 0.0
	for _, point := range series {
		diff := point.Amount - mean
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(series)-1))
}

// meanCoverage averages the prediction-interval coverage across folds.
func meanCoverage(folds []service.FoldMetrics) float64 {
	if len(folds) == 0 {
		return 0
	}
	sum := 0.0
	for _, fold := range folds {
		sum += fold.Coverage
	}
	return sum / float64(len(folds))
}

// round2 rounds to 2 decimal places for presentation.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package oracle provides the default forecasting model: an ordinary
// least-squares linear trend with residual-based prediction intervals and
// rolling-origin cross-validation. It implements service.Oracle and can be
// swapped for any other implementation of that interface.
package oracle

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/andresolmos/recurrente/internal/common"
	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/service"
)

// interval95 is the normal quantile for a 95% prediction interval.
const interval95 = 1.96

// TrendOracle fits linear trend models. Fitting is deterministic: the same
// series always produces the same model.
type TrendOracle struct{}

// New creates a TrendOracle.
func New() *TrendOracle {
	return &TrendOracle{}
}

// Fit trains a linear trend model on the series.
func (o *TrendOracle) Fit(ctx context.Context, series []model.SeriesPoint) (service.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, common.ErrEmptySeries
	}

	fit, err := fitTrend(series)
	if err != nil {
		return nil, err
	}

	return &trendModel{
		series: series,
		fit:    fit,
	}, nil
}

// trendFit holds the fitted coefficients. The regressor is days elapsed
// since the first period of the training series.
type trendFit struct {
	origin      time.Time
	intercept   float64
	slope       float64
	residualStd float64
}

func (f trendFit) predict(period time.Time) float64 {
	x := period.Sub(f.origin).Hours() / 24
	return f.intercept + f.slope*x
}

// fitTrend runs ordinary least squares of amount on elapsed days.
func fitTrend(series []model.SeriesPoint) (trendFit, error) {
	n := float64(len(series))
	if len(series) < 2 {
		return trendFit{}, fmt.Errorf("%w: need at least 2 points, got %d", common.ErrDegenerateFit, len(series))
	}

	origin := series[0].Period
	var sumX, sumY, sumXX, sumXY float64
	for _, point := range series {
		x := point.Period.Sub(origin).Hours() / 24
		sumX += x
		sumY += point.Amount
		sumXX += x * x
		sumXY += x * point.Amount
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return trendFit{}, fmt.Errorf("%w: all observations share one date", common.ErrDegenerateFit)
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	fit := trendFit{
		origin:    origin,
		intercept: intercept,
		slope:     slope,
	}

	// Residual standard error with two estimated parameters.
	if len(series) > 2 {
		var sumSq float64
		for _, point := range series {
			resid := point.Amount - fit.predict(point.Period)
			sumSq += resid * resid
		}
		fit.residualStd = math.Sqrt(sumSq / (n - 2))
	}

	return fit, nil
}

type trendModel struct {
	fit    trendFit
	series []model.SeriesPoint
}

// Predict forecasts the requested number of periods past the last observed
// one, spaced at the cadence, with 95% prediction intervals.
func (m *trendModel) Predict(ctx context.Context, periodsAhead int, cadence model.Cadence) ([]service.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if periodsAhead <= 0 {
		return nil, fmt.Errorf("periodsAhead must be positive, got %d", periodsAhead)
	}

	margin := interval95 * m.fit.residualStd
	predictions := make([]service.Prediction, 0, periodsAhead)

	period := m.series[len(m.series)-1].Period
	for i := 0; i < periodsAhead; i++ {
		period = cadence.Next(period)
		yhat := m.fit.predict(period)
		predictions = append(predictions, service.Prediction{
			Period: period,
			YHat:   yhat,
			Lower:  yhat - margin,
			Upper:  yhat + margin,
		})
	}

	return predictions, nil
}

// CrossValidate runs rolling-origin cross-validation: starting after the
// initial training window, it refits on each growing prefix and scores the
// points inside the horizon after the cutoff, stepping cutoffs by period.
func (m *trendModel) CrossValidate(ctx context.Context, initial, period, horizon time.Duration) ([]service.FoldMetrics, error) {
	first := m.series[0].Period
	last := m.series[len(m.series)-1].Period

	var folds []service.FoldMetrics
	for cutoff := first.Add(initial); !cutoff.Add(horizon).After(last); cutoff = cutoff.Add(period) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fold, ok, err := m.scoreFold(cutoff, horizon)
		if err != nil {
			return nil, err
		}
		if ok {
			folds = append(folds, fold)
		}
	}

	if len(folds) == 0 {
		return nil, fmt.Errorf("%w: series shorter than initial window plus horizon", common.ErrDegenerateFit)
	}

	return folds, nil
}

// scoreFold fits on points at or before the cutoff and scores the points
// within (cutoff, cutoff+horizon]. Folds without enough training points or
// without holdout points are skipped.
func (m *trendModel) scoreFold(cutoff time.Time, horizon time.Duration) (service.FoldMetrics, bool, error) {
	var train, holdout []model.SeriesPoint
	for _, point := range m.series {
		switch {
		case !point.Period.After(cutoff):
			train = append(train, point)
		case !point.Period.After(cutoff.Add(horizon)):
			holdout = append(holdout, point)
		}
	}

	if len(train) < 2 || len(holdout) == 0 {
		return service.FoldMetrics{}, false, nil
	}

	fit, err := fitTrend(train)
	if err != nil {
		return service.FoldMetrics{}, false, err
	}

	margin := interval95 * fit.residualStd
	covered := 0
	absErr := 0.0
	for _, point := range holdout {
		yhat := fit.predict(point.Period)
		if point.Amount >= yhat-margin && point.Amount <= yhat+margin {
			covered++
		}
		absErr += math.Abs(point.Amount - yhat)
	}

	return service.FoldMetrics{
		CutoffDate: cutoff,
		Coverage:   float64(covered) / float64(len(holdout)),
		MAE:        absErr / float64(len(holdout)),
		Points:     len(holdout),
	}, true, nil
}

// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/andresolmos/recurrente/internal/model"
)

// Storage defines the contract for the transaction store. The store is
// loaded once at startup and queried read-only per customer afterwards.
type Storage interface {
	// SaveTransactions persists a batch, ignoring duplicates by content hash.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	// GetTransactionsByCustomer returns a customer's transactions ordered by
	// date ascending. An unknown customer yields an empty slice, not an error.
	GetTransactionsByCustomer(ctx context.Context, customerID string) ([]model.Transaction, error)
	// ListCustomers returns the distinct customer identifiers in the store.
	ListCustomers(ctx context.Context) ([]string, error)
	// TransactionCount returns the total number of stored transactions.
	TransactionCount(ctx context.Context) (int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Oracle is the external forecasting capability. Implementations must be
// deterministic given the same series.
type Oracle interface {
	// Fit trains a model on an ordered (period, amount) series.
	Fit(ctx context.Context, series []model.SeriesPoint) (Model, error)
}

// Model is a fitted forecasting model.
type Model interface {
	// Predict returns forecasts for the given number of periods beyond the
	// last observed period, spaced at the given cadence.
	Predict(ctx context.Context, periodsAhead int, cadence model.Cadence) ([]Prediction, error)
	// CrossValidate runs rolling-origin historical cross-validation and
	// returns one metric set per fold.
	CrossValidate(ctx context.Context, initial, period, horizon time.Duration) ([]FoldMetrics, error)
}

// Prediction is a single forecasted point with its prediction interval.
type Prediction struct {
	Period time.Time
	YHat   float64
	Lower  float64
	Upper  float64
}

// FoldMetrics holds per-fold cross-validation performance.
// Coverage is the fraction of holdout points inside the prediction
// interval, on a 0-1 scale.
type FoldMetrics struct {
	CutoffDate time.Time
	Coverage   float64
	MAE        float64
	Points     int
}

// Package engine ties the transaction store, the recurrence classifier,
// and the forecaster into the customer-facing analysis operations.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andresolmos/recurrente/internal/classification"
	"github.com/andresolmos/recurrente/internal/forecast"
	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/service"
)

// Config holds configuration for the analyzer.
type Config struct {
	Tolerances    classification.Tolerances
	Forecast      forecast.Config
	OracleTimeout time.Duration
}

// DefaultConfig returns the default analyzer configuration.
func DefaultConfig() Config {
	return Config{
		Tolerances:    classification.DefaultTolerances(),
		Forecast:      forecast.DefaultConfig(),
		OracleTimeout: 30 * time.Second,
	}
}

// Analyzer runs classification and forecasting for one customer at a time.
// Each invocation works on an independent filtered copy of the data, so
// concurrent invocations for different customers are safe.
type Analyzer struct {
	storage       service.Storage
	classifier    *classification.Classifier
	forecaster    *forecast.Forecaster
	oracleTimeout time.Duration
}

// New creates an analyzer with the default configuration.
func New(storage service.Storage, oracle service.Oracle) *Analyzer {
	return NewWithConfig(storage, oracle, DefaultConfig())
}

// NewWithConfig creates an analyzer with a custom configuration.
func NewWithConfig(storage service.Storage, oracle service.Oracle, config Config) *Analyzer {
	return &Analyzer{
		storage:       storage,
		classifier:    classification.NewClassifier(config.Tolerances),
		forecaster:    forecast.NewWithConfig(oracle, config.Forecast),
		oracleTimeout: config.OracleTimeout,
	}
}

// Customers lists the customer identifiers present in the store.
func (a *Analyzer) Customers(ctx context.Context) ([]string, error) {
	return a.storage.ListCustomers(ctx)
}

// Records returns the customer's transactions augmented with derived
// calendar fields. An unknown customer yields an empty slice.
func (a *Analyzer) Records(ctx context.Context, customerID string) ([]model.Record, error) {
	transactions, err := a.storage.GetTransactionsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for %s: %w", customerID, err)
	}
	return model.DeriveRecords(transactions), nil
}

// Classify returns one recurrence classification per merchant for the
// customer. An unknown customer yields an empty result, not an error.
func (a *Analyzer) Classify(ctx context.Context, customerID string) ([]model.Classification, error) {
	records, err := a.Records(ctx, customerID)
	if err != nil {
		return nil, err
	}

	classifications := a.classifier.Classify(records)
	slog.Debug("Classified customer expenses",
		"customer", customerID,
		"transactions", len(records),
		"merchants", len(classifications))

	return classifications, nil
}

// ClassifyTagged returns the customer's records each annotated with its
// merchant's recurrence category.
func (a *Analyzer) ClassifyTagged(ctx context.Context, customerID string) ([]model.TaggedRecord, error) {
	records, err := a.Records(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return a.classifier.ClassifyTagged(records), nil
}

// Forecast produces the customer's next-period spend prediction. The
// oracle call is bounded by the configured timeout; its cost grows with
// series length and cross-validation folds.
func (a *Analyzer) Forecast(ctx context.Context, customerID string) (*model.Forecast, error) {
	records, err := a.Records(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, a.oracleTimeout)
	defer cancel()

	return a.forecaster.Forecast(ctx, records)
}

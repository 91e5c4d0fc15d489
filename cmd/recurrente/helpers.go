package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/andresolmos/recurrente/internal/classification"
	"github.com/andresolmos/recurrente/internal/config"
	"github.com/andresolmos/recurrente/internal/engine"
	"github.com/andresolmos/recurrente/internal/forecast"
	"github.com/andresolmos/recurrente/internal/oracle"
	"github.com/andresolmos/recurrente/internal/storage"
)

// openStorage opens the configured transaction store and runs migrations.
// Callers own the returned store and must close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("database.path"))
	if err := config.EnsureParentDir(dbPath); err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	return store, nil
}

// newAnalyzer assembles the analyzer from configuration.
func newAnalyzer(store *storage.SQLiteStorage) *engine.Analyzer {
	cfg := engine.Config{
		Tolerances: classification.Tolerances{
			Day:          viper.GetInt("classify.tolerance_day"),
			Amount:       viper.GetFloat64("classify.tolerance_amount"),
			MinFrequency: viper.GetInt("classify.min_frequency"),
		},
		Forecast: forecast.Config{
			Thresholds: forecast.CadenceThresholds{
				Monthly:     viper.GetFloat64("forecast.cadence.monthly_max"),
				Semimonthly: viper.GetFloat64("forecast.cadence.semimonthly_max"),
			},
			MinPeriods:      viper.GetInt("forecast.min_periods"),
			MinStdDev:       viper.GetFloat64("forecast.min_std_dev"),
			KeepZeroPeriods: viper.GetBool("forecast.keep_zero_periods"),
			CVInitial:       days(viper.GetInt("forecast.cv.initial_days")),
			CVPeriod:        days(viper.GetInt("forecast.cv.period_days")),
			CVHorizon:       days(viper.GetInt("forecast.cv.horizon_days")),
		},
		OracleTimeout: viper.GetDuration("forecast.oracle_timeout"),
	}

	return engine.NewWithConfig(store, oracle.New(), cfg)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

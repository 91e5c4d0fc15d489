package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresolmos/recurrente/internal/engine"
	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/oracle"
	"github.com/andresolmos/recurrente/internal/testutil"
)

func seedTransactions() []model.Transaction {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Customer dense: 14 months of alternating spend, enough signal to
	// pass the sufficiency gate and the cross-validation window.
	transactions := testutil.MonthlySeries("dense", "Renta", start, 14, 1200, 1250)
	transactions = append(transactions, testutil.MonthlySeries("dense", "Cine", start.AddDate(0, 0, 17), 5, 89, 250, 140)...)

	// Customer thin: two months of activity, never forecastable.
	transactions = append(transactions,
		testutil.Txn("thin", "Tienda", start, 45),
		testutil.Txn("thin", "Tienda", start.AddDate(0, 1, 0), 60),
	)

	return transactions
}

func TestAnalyzerClassify(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	got, err := analyzer.Classify(context.Background(), "dense")
	require.NoError(t, err)
	require.Len(t, got, 2)

	byMerchant := make(map[string]model.Classification)
	for _, c := range got {
		byMerchant[c.Merchant] = c
	}

	renta := byMerchant["Renta"]
	assert.Equal(t, model.RecurrenceFixed, renta.Type)
	assert.Equal(t, 14, renta.Count)

	cine := byMerchant["Cine"]
	assert.Equal(t, model.RecurrenceFrequent, cine.Type)
	assert.Equal(t, 5, cine.Count)
}

func TestAnalyzerClassifyUnknownCustomer(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	got, err := analyzer.Classify(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnalyzerClassifyTagged(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	tagged, err := analyzer.ClassifyTagged(context.Background(), "thin")
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	for _, tr := range tagged {
		assert.Equal(t, "Tienda", tr.Merchant)
		assert.Equal(t, model.RecurrenceAnomalous, tr.Type)
		assert.NotZero(t, tr.PayDay)
		assert.NotEmpty(t, tr.Month)
	}
}

func TestAnalyzerForecast(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	got, err := analyzer.Forecast(context.Background(), "dense")
	require.NoError(t, err)

	assert.Equal(t, model.CadenceMonthly, got.Cadence)
	assert.GreaterOrEqual(t, got.Prediction, 0.0)
	assert.GreaterOrEqual(t, got.Coverage, 0.0)
	assert.LessOrEqual(t, got.Coverage, 100.0)
	assert.Positive(t, got.LastObserved)
	require.NotNil(t, got.Variation)
}

func TestAnalyzerForecastInsufficientData(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	for _, customer := range []string{"thin", "nobody"} {
		_, err := analyzer.Forecast(context.Background(), customer)

		var insufficient *model.InsufficientDataError
		require.ErrorAs(t, err, &insufficient, "customer %s", customer)
	}
}

func TestAnalyzerCustomers(t *testing.T) {
	store := testutil.SetupTestDB(t, seedTransactions())
	analyzer := engine.New(store, oracle.New())

	customers, err := analyzer.Customers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"dense", "thin"}, customers)
}

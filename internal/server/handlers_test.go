package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresolmos/recurrente/internal/engine"
	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/oracle"
	"github.com/andresolmos/recurrente/internal/server"
	"github.com/andresolmos/recurrente/internal/testutil"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	transactions := testutil.MonthlySeries("alice", "Gimnasio", start, 14, 550, 610)
	transactions = append(transactions,
		testutil.Txn("bob", "Farmacia", start, 120),
		testutil.Txn("bob", "Farmacia", start.AddDate(0, 2, 0), 95),
	)

	store := testutil.SetupTestDB(t, transactions)
	analyzer := engine.New(store, oracle.New())
	return server.New("127.0.0.1:0", analyzer)
}

func get(t *testing.T, srv *server.Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(target))
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestListCustomers(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Customers []string `json:"customers"`
	}
	decode(t, rec, &body)
	assert.Equal(t, []string{"alice", "bob"}, body.Customers)
}

func TestClassification(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers/alice/classification")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Classification []model.Classification `json:"classification"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Classification, 1)
	assert.Equal(t, "Gimnasio", body.Classification[0].Merchant)
	assert.Equal(t, model.RecurrenceFixed, body.Classification[0].Type)
	assert.Equal(t, 14, body.Classification[0].Count)
}

func TestClassificationDetailRows(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers/bob/classification?detail=rows")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Transactions []model.TaggedRecord `json:"transactions"`
	}
	decode(t, rec, &body)
	require.Len(t, body.Transactions, 2)
	for _, tr := range body.Transactions {
		assert.Equal(t, "Farmacia", tr.Merchant)
		assert.Equal(t, model.RecurrenceAnomalous, tr.Type)
	}
}

func TestClassificationUnknownCustomer(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers/nobody/classification")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Classification []model.Classification `json:"classification"`
	}
	decode(t, rec, &body)
	assert.Empty(t, body.Classification)
	assert.NotNil(t, body.Classification)
}

func TestForecast(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers/alice/forecast")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string          `json:"status"`
		Forecast *model.Forecast `json:"forecast"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "ok", body.Status)
	require.NotNil(t, body.Forecast)
	assert.Equal(t, model.CadenceMonthly, body.Forecast.Cadence)
	assert.GreaterOrEqual(t, body.Forecast.Prediction, 0.0)
	assert.Positive(t, body.Forecast.LastObserved)
}

func TestForecastInsufficientData(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/customers/bob/forecast")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status   string          `json:"status"`
		Forecast *model.Forecast `json:"forecast"`
		Reason   string          `json:"reason"`
	}
	decode(t, rec, &body)
	assert.Equal(t, "insufficient_data", body.Status)
	assert.Nil(t, body.Forecast)
	assert.NotEmpty(t, body.Reason)
}

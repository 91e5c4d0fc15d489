package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/andresolmos/recurrente/internal/model"
)

func TestGenerateHash(t *testing.T) {
	base := model.Transaction{
		Date:       time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		CustomerID: "cust-1",
		Merchant:   "Netflix",
		Amount:     139.00,
	}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, base.GenerateHash(), base.GenerateHash())
	})

	t.Run("time of day does not matter", func(t *testing.T) {
		other := base
		other.Date = time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("amount changes the hash", func(t *testing.T) {
		other := base
		other.Amount = 139.01
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})

	t.Run("customer changes the hash", func(t *testing.T) {
		other := base
		other.CustomerID = "cust-2"
		assert.NotEqual(t, base.GenerateHash(), other.GenerateHash())
	})
}

func TestNewRecord(t *testing.T) {
	txn := model.Transaction{
		Date:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		CustomerID: "cust-1",
		Merchant:   "Spotify",
		Amount:     115.0,
	}

	record := model.NewRecord(txn)
	assert.Equal(t, 5, record.PayDay)
	assert.Equal(t, "2024-03", record.Month)
	assert.Equal(t, "March 2024", record.MonthLabel)
	assert.Equal(t, txn, record.Transaction)
}

func TestDeriveRecordsPreservesOrder(t *testing.T) {
	transactions := []model.Transaction{
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Merchant: "B"},
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Merchant: "A"},
	}

	records := model.DeriveRecords(transactions)
	assert.Len(t, records, 2)
	assert.Equal(t, "B", records[0].Merchant)
	assert.Equal(t, "A", records[1].Merchant)
}

func TestCadenceNext(t *testing.T) {
	start := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cadence model.Cadence
		want    time.Time
	}{
		{"monthly", model.CadenceMonthly, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"semimonthly", model.CadenceSemimonthly, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"weekly", model.CadenceWeekly, time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cadence.Next(start))
		})
	}
}

// Package testutil provides test fixtures for storage-backed tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/andresolmos/recurrente/internal/model"
	"github.com/andresolmos/recurrente/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite store seeded with the
// given transactions, with cleanup registered on the test.
func SetupTestDB(t *testing.T, transactions []model.Transaction) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(transactions) > 0 {
		if err := store.SaveTransactions(ctx, transactions); err != nil {
			t.Fatalf("failed to seed transactions: %v", err)
		}
	}

	return store
}

// Txn builds a transaction with sensible defaults for tests.
func Txn(customerID, merchant string, date time.Time, amount float64) model.Transaction {
	txn := model.Transaction{
		CustomerID:   customerID,
		Date:         date,
		Merchant:     merchant,
		MerchantGiro: "retail",
		SaleType:     "fisica",
		Amount:       amount,
	}
	txn.Hash = txn.GenerateHash()
	return txn
}

// MonthlySeries generates one transaction per month at the given merchant,
// starting at start, for the given number of months. Amounts follow the
// amounts slice cyclically.
func MonthlySeries(customerID, merchant string, start time.Time, months int, amounts ...float64) []model.Transaction {
	transactions := make([]model.Transaction, 0, months)
	for i := 0; i < months; i++ {
		amount := amounts[i%len(amounts)]
		transactions = append(transactions, Txn(customerID, merchant, start.AddDate(0, i, 0), amount))
	}
	return transactions
}

package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/andresolmos/recurrente/internal/model"
)

// SaveTransactions saves a batch of transactions, ignoring duplicates by
// content hash.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			hash, customer_id, date, merchant, merchant_giro, sale_type, amount
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if _, err := stmt.ExecContext(ctx,
			txn.Hash,
			txn.CustomerID,
			txn.Date,
			txn.Merchant,
			txn.MerchantGiro,
			txn.SaleType,
			txn.Amount,
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.Hash, err)
		}
	}

	return tx.Commit()
}

// GetTransactionsByCustomer returns a customer's transactions ordered by
// date ascending. An unknown customer yields an empty slice.
func (s *SQLiteStorage) GetTransactionsByCustomer(ctx context.Context, customerID string) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(customerID, "customerID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT hash, customer_id, date, merchant, merchant_giro, sale_type, amount
		FROM transactions
		WHERE customer_id = ?
		ORDER BY date ASC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var txn model.Transaction
		var date time.Time
		if err := rows.Scan(
			&txn.Hash,
			&txn.CustomerID,
			&date,
			&txn.Merchant,
			&txn.MerchantGiro,
			&txn.SaleType,
			&txn.Amount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Date = date
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// ListCustomers returns the distinct customer identifiers in the store.
func (s *SQLiteStorage) ListCustomers(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT customer_id FROM transactions ORDER BY customer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var customers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		customers = append(customers, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}

	return customers, nil
}

// TransactionCount returns the total number of stored transactions.
func (s *SQLiteStorage) TransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return count, nil
}

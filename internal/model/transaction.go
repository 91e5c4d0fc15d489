// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single purchase by a customer at a merchant.
// JSON tags follow the column names of the source dataset.
type Transaction struct {
	Date         time.Time `json:"fecha"`
	CustomerID   string    `json:"id"`
	Merchant     string    `json:"comercio"`
	MerchantGiro string    `json:"giro_comercio"`
	SaleType     string    `json:"tipo_venta"`
	Hash         string    `json:"-"`
	Amount       float64   `json:"monto"`
}

// GenerateHash creates a unique hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%.2f:%s",
		t.CustomerID,
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Merchant)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Record is a transaction augmented with derived calendar fields. Records
// are recomputed on every filter pass and never persisted.
type Record struct {
	Transaction
	Month      string `json:"mes"`          // period key, e.g. "2024-03"
	MonthLabel string `json:"mes_completo"` // e.g. "March 2024"
	PayDay     int    `json:"dia_pago"`     // day of month, 1-31
}

// DeriveRecords derives calendar fields for every transaction, preserving
// order.
func DeriveRecords(transactions []Transaction) []Record {
	records := make([]Record, len(transactions))
	for i, t := range transactions {
		records[i] = NewRecord(t)
	}
	return records
}

// NewRecord derives the calendar fields for a transaction.
func NewRecord(t Transaction) Record {
	return Record{
		Transaction: t,
		PayDay:      t.Date.Day(),
		Month:       t.Date.Format("2006-01"),
		MonthLabel:  t.Date.Format("January 2006"),
	}
}

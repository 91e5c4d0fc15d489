// Package importer parses transaction datasets into the domain model.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andresolmos/recurrente/internal/model"
)

// csv column order of the source dataset.
var expectedColumns = []string{"id", "fecha", "comercio", "giro_comercio", "tipo_venta", "monto"}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "02/01/2006"}

// CSVParser reads the transaction dataset export.
type CSVParser struct{}

// NewCSVParser creates a CSV dataset parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads all transactions from the reader, calling progress (when not
// nil) once per parsed row. Amounts are parsed exactly as decimals before
// conversion, so "499.90" never imports as 499.89999.
func (p *CSVParser) Parse(reader io.Reader, progress func()) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line+1, err)
		}
		line++

		txn, err := parseRow(row, columns)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		transactions = append(transactions, txn)
		if progress != nil {
			progress()
		}
	}

	return transactions, nil
}

// mapColumns resolves each expected column to its index, so column order
// in the export does not matter.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range expectedColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	date, err := parseDate(field("fecha"))
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(field("monto"))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", field("monto"), err)
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}

	txn := model.Transaction{
		CustomerID:   field("id"),
		Date:         date,
		Merchant:     field("comercio"),
		MerchantGiro: field("giro_comercio"),
		SaleType:     field("tipo_venta"),
		Amount:       amount.Round(2).InexactFloat64(),
	}
	txn.Hash = txn.GenerateHash()

	return txn, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

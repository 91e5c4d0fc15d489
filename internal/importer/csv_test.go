package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,fecha,comercio,giro_comercio,tipo_venta,monto
c100,2024-01-15,Gasolinera X,combustible,fisica,500.00
c100,2024-02-15,Gasolinera X,combustible,fisica,499.90
c200,2024-01-03,Cafeteria Y,alimentos,digital,45.20
`

func TestCSVParse(t *testing.T) {
	parser := NewCSVParser()

	rows := 0
	transactions, err := parser.Parse(strings.NewReader(sampleCSV), func() { rows++ })
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, 3, rows)

	first := transactions[0]
	assert.Equal(t, "c100", first.CustomerID)
	assert.Equal(t, "Gasolinera X", first.Merchant)
	assert.Equal(t, "combustible", first.MerchantGiro)
	assert.Equal(t, "fisica", first.SaleType)
	assert.True(t, first.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.InDelta(t, 500.0, first.Amount, 1e-9)
	assert.NotEmpty(t, first.Hash)

	// Decimal parsing keeps two exact decimals.
	assert.InDelta(t, 499.90, transactions[1].Amount, 1e-9)
}

func TestCSVParseReorderedColumns(t *testing.T) {
	csv := "monto,comercio,id,fecha,giro_comercio,tipo_venta\n12.50,Tienda,c1,2024-03-07,retail,fisica\n"

	transactions, err := NewCSVParser().Parse(strings.NewReader(csv), nil)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Tienda", transactions[0].Merchant)
	assert.InDelta(t, 12.50, transactions[0].Amount, 1e-9)
}

func TestCSVParseErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"missing column", "id,fecha,comercio,monto\nc1,2024-01-01,X,10\n"},
		{"bad amount", sampleHeader() + "c1,2024-01-01,X,g,f,not-a-number\n"},
		{"negative amount", sampleHeader() + "c1,2024-01-01,X,g,f,-12.00\n"},
		{"bad date", sampleHeader() + "c1,enero,X,g,f,10.00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse(strings.NewReader(tt.csv), nil)
			assert.Error(t, err)
		})
	}
}

func sampleHeader() string {
	return "id,fecha,comercio,giro_comercio,tipo_venta,monto\n"
}

package model

// RecurrenceType is the category assigned to a merchant's expense pattern.
type RecurrenceType string

// Recurrence category constants. The values are the Spanish labels used by
// the source dataset and reports.
const (
	// RecurrenceFixed marks expenses with both a regular day and a regular amount.
	RecurrenceFixed RecurrenceType = "Gasto fijo"
	// RecurrenceFrequent marks expenses with a regular day but variable amount.
	RecurrenceFrequent RecurrenceType = "Gasto frecuente"
	// RecurrenceInfrequent marks expenses with a stable amount but irregular timing.
	RecurrenceInfrequent RecurrenceType = "Poco frecuente"
	// RecurrenceAnomalous marks expenses with no detectable pattern.
	RecurrenceAnomalous RecurrenceType = "Anormal"
)

// Classification summarizes one merchant's recurrence pattern for a customer.
type Classification struct {
	Merchant      string         `json:"comercio"`
	Type          RecurrenceType `json:"tipo"`
	Count         int            `json:"veces"`
	AverageAmount float64        `json:"monto_promedio"`
}

// TaggedRecord is a derived transaction record annotated with its
// merchant's recurrence category, for row-level display.
type TaggedRecord struct {
	Record
	Type RecurrenceType `json:"tipo"`
}

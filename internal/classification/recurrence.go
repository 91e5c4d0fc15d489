// Package classification determines the recurrence category of a
// customer's expenses, merchant by merchant.
package classification

import (
	"math"
	"sort"

	"github.com/andresolmos/recurrente/internal/model"
)

// Tolerances configures how strictly a merchant's transactions must cluster
// around their day and amount modes to count as recurring.
type Tolerances struct {
	Amount       float64 // currency units around the amount mode
	Day          int     // days around the day-of-month mode
	MinFrequency int     // occurrences within tolerance needed to recur
}

// DefaultTolerances returns the standard classification tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Day:          2,
		Amount:       1.0,
		MinFrequency: 3,
	}
}

// Classifier assigns recurrence categories to merchant expense groups.
// Classification is a total function: every input, including empty and
// single-row groups, maps to a defined category.
type Classifier struct {
	tolerances Tolerances
}

// NewClassifier creates a classifier with the given tolerances.
func NewClassifier(tolerances Tolerances) *Classifier {
	return &Classifier{tolerances: tolerances}
}

// Classify groups the records by merchant and returns one classification
// per merchant, ordered by merchant name.
func (c *Classifier) Classify(records []model.Record) []model.Classification {
	groups, merchants := groupByMerchant(records)

	classifications := make([]model.Classification, 0, len(merchants))
	for _, merchant := range merchants {
		group := groups[merchant]
		classifications = append(classifications, model.Classification{
			Merchant:      merchant,
			Type:          c.classifyGroup(group),
			Count:         len(group),
			AverageAmount: meanAmount(group),
		})
	}

	return classifications
}

// ClassifyTagged performs the same category computation but returns every
// record annotated with its merchant's category, preserving input order.
func (c *Classifier) ClassifyTagged(records []model.Record) []model.TaggedRecord {
	groups, _ := groupByMerchant(records)

	types := make(map[string]model.RecurrenceType, len(groups))
	for merchant, group := range groups {
		types[merchant] = c.classifyGroup(group)
	}

	tagged := make([]model.TaggedRecord, len(records))
	for i, record := range records {
		tagged[i] = model.TaggedRecord{
			Record: record,
			Type:   types[record.Merchant],
		}
	}

	return tagged
}

// classifyGroup decides the recurrence category for one merchant group.
func (c *Classifier) classifyGroup(group []model.Record) model.RecurrenceType {
	if len(group) < 2 {
		return model.RecurrenceAnomalous
	}

	days := make([]float64, len(group))
	amounts := make([]float64, len(group))
	for i, record := range group {
		days[i] = float64(record.PayDay)
		amounts[i] = record.Amount
	}

	dayMode := mode(days)
	amountMode := mode(amounts)

	daysInRange := 0
	amountsInRange := 0
	for i := range group {
		if math.Abs(days[i]-dayMode) <= float64(c.tolerances.Day) {
			daysInRange++
		}
		if math.Abs(amounts[i]-amountMode) <= c.tolerances.Amount {
			amountsInRange++
		}
	}

	switch {
	case daysInRange >= c.tolerances.MinFrequency && amountsInRange >= c.tolerances.MinFrequency:
		return model.RecurrenceFixed
	case daysInRange >= c.tolerances.MinFrequency:
		return model.RecurrenceFrequent
	case amountsInRange >= c.tolerances.MinFrequency:
		return model.RecurrenceInfrequent
	default:
		return model.RecurrenceAnomalous
	}
}

// groupByMerchant buckets records by merchant and returns the sorted
// merchant names for deterministic iteration.
func groupByMerchant(records []model.Record) (map[string][]model.Record, []string) {
	groups := make(map[string][]model.Record)
	for _, record := range records {
		groups[record.Merchant] = append(groups[record.Merchant], record)
	}

	merchants := make([]string, 0, len(groups))
	for merchant := range groups {
		merchants = append(merchants, merchant)
	}
	sort.Strings(merchants)

	return groups, merchants
}

// mode returns the most frequent value. Ties break toward the smallest
// value so the result does not depend on input order.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	var best float64
	bestCount := 0
	for v, count := range counts {
		if count > bestCount || (count == bestCount && v < best) {
			best = v
			bestCount = count
		}
	}

	return best
}

// meanAmount computes the arithmetic mean of the group's amounts.
func meanAmount(group []model.Record) float64 {
	if len(group) == 0 {
		return 0
	}
	sum := 0.0
	for _, record := range group {
		sum += record.Amount
	}
	return sum / float64(len(group))
}

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andresolmos/recurrente/internal/model"
)

// RenderClassificationTable formats merchant classifications as an aligned
// terminal table.
func RenderClassificationTable(classifications []model.Classification) string {
	if len(classifications) == 0 {
		return SubtleStyle.Render("No transactions for this customer.")
	}

	merchantWidth := len("Merchant")
	for _, c := range classifications {
		if len(c.Merchant) > merchantWidth {
			merchantWidth = len(c.Merchant)
		}
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s  %-16s  %5s  %12s", merchantWidth, "Merchant", "Category", "Count", "Avg amount")
	b.WriteString(TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for _, c := range classifications {
		row := fmt.Sprintf("%-*s  %-16s  %5d  %12.2f",
			merchantWidth, c.Merchant, c.Type, c.Count, c.AverageAmount)
		b.WriteString(TableCellStyle.Render(styleForType(c.Type).Render(row)))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderForecast formats a forecast result as a boxed summary.
func RenderForecast(customerID string, forecast *model.Forecast) string {
	variation := "n/a"
	if forecast.Variation != nil {
		variation = fmt.Sprintf("%+.2f%%", *forecast.Variation)
	}

	content := fmt.Sprintf(
		"Cadence:        %s (%d periods)\nLast observed:  %.2f\nPredicted next: %.2f\nVariation:      %s\nCoverage:       %.2f%%",
		forecast.Cadence,
		forecast.Periods,
		forecast.LastObserved,
		forecast.Prediction,
		variation,
		forecast.Coverage,
	)

	return RenderBox(fmt.Sprintf("Spend forecast for customer %s", customerID), content)
}

func styleForType(t model.RecurrenceType) lipgloss.Style {
	switch t {
	case model.RecurrenceFixed:
		return SuccessStyle
	case model.RecurrenceAnomalous:
		return WarningStyle
	default:
		return lipgloss.NewStyle()
	}
}

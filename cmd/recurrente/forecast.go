package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andresolmos/recurrente/internal/cli"
	"github.com/andresolmos/recurrente/internal/model"
)

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast <customer-id>",
		Short: "Forecast a customer's next-period spend",
		Long: `Aggregate a customer's history at a cadence chosen from transaction
density and predict the next period's spend, with the percent variation
versus the last observed period and a cross-validated coverage metric.`,
		Args: cobra.ExactArgs(1),
		RunE: runForecast,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")
	_ = viper.BindPFlag("forecast.format", cmd.Flags().Lookup("format"))

	return cmd
}

func runForecast(cmd *cobra.Command, args []string) error {
	customerID := args[0]

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	analyzer := newAnalyzer(store)

	result, err := analyzer.Forecast(cmd.Context(), customerID)
	if err != nil {
		var insufficient *model.InsufficientDataError
		if errors.As(err, &insufficient) {
			// A valid outcome for thin histories, not a failure.
			if viper.GetString("forecast.format") == "json" {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"status": "insufficient_data",
					"reason": insufficient.Error(),
				})
			}
			fmt.Println(cli.FormatWarning(insufficient.Error()))
			return nil
		}
		return err
	}

	if viper.GetString("forecast.format") == "json" {
		return json.NewEncoder(os.Stdout).Encode(result)
	}

	fmt.Println(cli.RenderForecast(customerID, result))

	return nil
}

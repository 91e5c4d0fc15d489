package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andresolmos/recurrente/internal/cli"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <customer-id>",
		Short: "Classify a customer's merchants by recurrence pattern",
		Long: `Group a customer's transactions by merchant and categorize each one
as Gasto fijo, Gasto frecuente, Poco frecuente, or Anormal.`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().String("format", "table", "Output format (table, json)")
	cmd.Flags().Bool("rows", false, "Tag every transaction instead of summarizing per merchant")
	_ = viper.BindPFlag("classify.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("classify.rows", cmd.Flags().Lookup("rows"))

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	customerID := args[0]

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	analyzer := newAnalyzer(store)

	if viper.GetBool("classify.rows") {
		tagged, err := analyzer.ClassifyTagged(cmd.Context(), customerID)
		if err != nil {
			return err
		}
		return json.NewEncoder(os.Stdout).Encode(tagged)
	}

	classifications, err := analyzer.Classify(cmd.Context(), customerID)
	if err != nil {
		return err
	}

	if viper.GetString("classify.format") == "json" {
		return json.NewEncoder(os.Stdout).Encode(classifications)
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Expense classification for customer %s", customerID)))
	fmt.Println(cli.RenderClassificationTable(classifications))

	return nil
}

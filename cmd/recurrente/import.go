package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/andresolmos/recurrente/internal/cli"
	"github.com/andresolmos/recurrente/internal/importer"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import the transaction dataset from a CSV export",
		Long: `Import customer transactions from a CSV export with columns
id, fecha, comercio, giro_comercio, tipo_venta, monto.

Rows already present in the database are skipped by content hash.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Parsing transactions..."),
	)

	parser := importer.NewCSVParser()
	transactions, err := parser.Parse(file, func() { _ = bar.Add(1) })
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if len(transactions) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in file"))
		return nil
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveTransactions(cmd.Context(), transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	total, err := store.TransactionCount(cmd.Context())
	if err != nil {
		return err
	}

	slog.Info("Import complete", "parsed", len(transactions), "stored_total", total)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d total in store)", len(transactions), total)))

	return nil
}

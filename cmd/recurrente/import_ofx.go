package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andresolmos/recurrente/internal/cli"
	"github.com/andresolmos/recurrente/internal/importer"
)

func importOFXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-ofx <file.ofx>",
		Short: "Import debits from an OFX/QFX bank statement",
		Long: `Import spend transactions from an OFX or QFX bank export. The
statement's account ID is used as the customer identifier; credits are
skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportOFX,
	}
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	path := args[0]

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	parser := importer.NewOFXParser()
	transactions, err := parser.Parse(file)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if len(transactions) == 0 {
		fmt.Println(cli.FormatWarning("No debit transactions found in statement"))
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

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %s", len(transactions), path)))

	return nil
}

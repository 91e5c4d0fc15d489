package importer

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/andresolmos/recurrente/internal/model"
)

// OFXParser maps OFX/QFX bank statements into the transaction model, so
// bank exports can be analyzed alongside the dataset. Only debits are
// imported: the analysis models spend, not income.
type OFXParser struct{}

// NewOFXParser creates an OFX statement parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// Parse reads an OFX/QFX document. The statement's account ID becomes the
// customer identifier.
func (p *OFXParser) Parse(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(strings.TrimLeft(string(content), " \t\r\n")))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			transactions = append(transactions, p.convertStatement(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			transactions = append(transactions, p.convertStatement(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.Info("Parsed OFX file", "transactions", len(transactions))

	return transactions, nil
}

func (p *OFXParser) convertStatement(list *ofxgo.TransactionList, accountID string) []model.Transaction {
	if list == nil {
		return nil
	}

	var transactions []model.Transaction
	for _, ofxTx := range list.Transactions {
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			continue // credit, not spend
		}

		txn := model.Transaction{
			CustomerID: accountID,
			Date:       ofxTx.DtPosted.Time,
			Merchant:   merchantName(ofxTx),
			SaleType:   fmt.Sprintf("%v", ofxTx.TrnType),
			Amount:     -amount,
		}
		txn.Hash = txn.GenerateHash()
		transactions = append(transactions, txn)
	}

	return transactions
}

// merchantName prefers the PAYEE record over the free-form NAME field.
func merchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}
	return strings.TrimSpace(string(tx.Name))
}

// Package ofx converts OFX/QFX bank and credit card statements into transactions.
package ofx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An opening tag at end of line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Parser implements OFX/QFX file parsing.
type Parser struct {
	defaultCategory string
}

// NewParser creates a parser that files transactions under defaultCategory
// unless the transaction type implies a better one.
func NewParser(defaultCategory string) *Parser {
	if defaultCategory == "" {
		defaultCategory = model.CategoryExtras
	}
	return &Parser{defaultCategory: defaultCategory}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its transactions in file order.
// Zero-amount entries are dropped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	// Process bank messages
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	// Process credit card messages
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	slog.InfoContext(ctx, "Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, accountID string) []model.Transaction {
	if list == nil {
		return nil
	}

	transactions := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		tx, ok := p.convertTransaction(ofxTx, accountID)
		if !ok {
			slog.Debug("Skipping zero-amount OFX transaction",
				"account", accountID,
				"fitid", ofxTx.FiTID)
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

// convertTransaction converts an OFX transaction to our model.
// OFX signs amounts: credits are positive, debits negative.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Transaction, bool) {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)
	if amount.IsZero() {
		return model.Transaction{}, false
	}

	trnType := ofxTx.TrnType.String()
	title := p.extractMerchantName(ofxTx)
	if title == "" {
		title = trnType
	}

	note := strings.TrimSpace(string(ofxTx.Memo))
	if ofxTx.CheckNum != "" {
		note = strings.TrimSpace(fmt.Sprintf("Check #%s %s", ofxTx.CheckNum, note))
	}

	return model.Transaction{
		ID:       transactionID(accountID, ofxTx),
		Date:     model.DateOf(ofxTx.DtPosted.Time),
		Title:    title,
		Category: p.categoryFor(trnType),
		Amount:   amount.Abs(),
		IsIncome: amount.IsPositive(),
		Note:     note,
	}, true
}

// transactionID scopes the FITID to its account, since banks only keep
// FITIDs unique within one account. Entries without a FITID get a hash of
// their contents so re-importing the same statement finds them again.
func transactionID(accountID string, ofxTx ofxgo.Transaction) string {
	fitID := strings.TrimSpace(string(ofxTx.FiTID))
	if fitID == "" {
		data := fmt.Sprintf("%s|%s|%s|%s|%s",
			accountID,
			ofxTx.DtPosted.Format("2006-01-02"),
			ofxTx.TrnAmt.String(),
			strings.TrimSpace(string(ofxTx.Name)),
			strings.TrimSpace(string(ofxTx.Memo)))
		hash := sha256.Sum256([]byte(data))
		fitID = "h" + hex.EncodeToString(hash[:])[:16]
	}
	return accountID + ":" + fitID
}

// categoryFor infers a category from the OFX transaction type.
func (p *Parser) categoryFor(trnType string) string {
	switch trnType {
	case "FEE", "SRVCHG":
		return model.CategoryBillsAndFees
	default:
		return p.defaultCategory
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	// Fall back to NAME field
	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(strings.TrimSpace(name))
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Accounts returns the sorted account ids found in the OFX file.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	accountMap := make(map[string]bool)

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			accountMap[string(stmt.BankAcctFrom.AcctID)] = true
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			accountMap[string(stmt.CCAcctFrom.AcctID)] = true
		}
	}

	accounts := make([]string, 0, len(accountMap))
	for acct := range accountMap {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)

	return accounts, nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide marks an accounting entry as a debit or a credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Account codes used when posting reports and expenses. A fuller chart of
// accounts is unnecessary: postings only ever touch these.
const (
	AccountCodeCash           = "1101" // caja y bancos
	AccountCodeFondoNacional  = "4101" // aporte fondo nacional
	AccountCodeDesignatedFund = "4102" // ofrendas designadas
	AccountCodeExpense        = "5101" // gastos generales
)

// AccountingEntry is one double-entry line. Entries are always created in
// debit/credit pairs of equal amounts, so sum(debits) == sum(credits) holds
// over any closed period.
type AccountingEntry struct {
	EntryID       string          `json:"entryID"` // Primary Key (UUID)
	TransactionID string          `json:"transactionID"`
	AccountCode   string          `json:"accountCode"`
	Side          EntrySide       `json:"side"`
	Amount        decimal.Decimal `json:"amount"` // Always positive
	Description   string          `json:"description"`
	EntryDate     time.Time       `json:"entryDate"`
	AuditFields
}

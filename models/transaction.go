package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind categorizes ledger postings
type TransactionKind string

const (
	TransactionKindDeposit         TransactionKind = "deposit"
	TransactionKindWithdrawal      TransactionKind = "withdrawal"
	TransactionKindInterestCredit  TransactionKind = "interest_credit"
	TransactionKindPrincipalReturn TransactionKind = "principal_return"
)

// Transaction is one posted ledger entry against an account
type Transaction struct {
	ID          int64           `db:"id"`
	AccountID   int64           `db:"account_id"`
	Kind        TransactionKind `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	PerformedBy int64           `db:"performed_by"`
	CreatedAt   time.Time       `db:"created_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedDepositStatus represents the lifecycle state of a fixed deposit
type FixedDepositStatus string

const (
	FixedDepositStatusActive  FixedDepositStatus = "active"
	FixedDepositStatusMatured FixedDepositStatus = "matured"
	FixedDepositStatusClosed  FixedDepositStatus = "closed"
)

// FixedDeposit represents a term deposit linked to a savings account.
// Interest accrues monthly and is credited to the linked account; on
// maturity the principal is returned to the same account.
type FixedDeposit struct {
	ID           int64              `db:"id"`
	AccountID    int64              `db:"account_id"` // linked savings account
	PlanName     string             `db:"plan_name"`
	InterestRate decimal.Decimal    `db:"interest_rate"` // annual percentage
	Principal    decimal.Decimal    `db:"principal"`
	StartDate    time.Time          `db:"start_date"`
	MaturityDate time.Time          `db:"maturity_date"`
	Status       FixedDepositStatus `db:"status"`
	CreatedAt    time.Time          `db:"created_at"`
}

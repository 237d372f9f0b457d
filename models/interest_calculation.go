package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculationStatus is the outcome of one interest processing attempt
type CalculationStatus string

const (
	CalculationStatusCredited CalculationStatus = "credited"
	CalculationStatusFailed   CalculationStatus = "failed"
)

// InterestCalculation is the persisted outcome of attempting to process
// one due item. Rows are append-only: a retried source gets a fresh row
// on a later run, so history may show failed rows before a credited one.
type InterestCalculation struct {
	ID              int64             `db:"id"`
	Kind            InterestKind      `db:"kind"`
	SourceID        int64             `db:"source_id"`
	CreditAccountID int64             `db:"credit_account_id"`
	CalculationDate time.Time         `db:"calculation_date"`
	Amount          decimal.Decimal   `db:"amount"`
	PeriodDays      int               `db:"period_days"`
	Rate            decimal.Decimal   `db:"rate"`
	PlanName        string            `db:"plan_name"`
	Status          CalculationStatus `db:"status"`
	CreditedAt      *time.Time        `db:"credited_at"` // set only when credited
	CreatedAt       time.Time         `db:"created_at"`
}

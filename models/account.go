package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus represents the lifecycle state of a savings account
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account represents a customer savings account
type Account struct {
	ID           int64           `db:"id"`
	HolderName   string          `db:"holder_name"`
	PlanName     string          `db:"plan_name"`
	InterestRate decimal.Decimal `db:"interest_rate"` // annual percentage
	Balance      decimal.Decimal `db:"balance"`
	Status       AccountStatus   `db:"status"`
	OpenedAt     time.Time       `db:"opened_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaturitySummary is the result of a matured-deposit sweep: how many
// deposits were closed out and how much principal went back to linked
// savings accounts.
type MaturitySummary struct {
	ProcessedCount         int
	TotalPrincipalReturned decimal.Decimal
}

// RunSummary is the aggregate result of one interest batch run.
// It is logged and returned, never persisted.
type RunSummary struct {
	Kind                  InterestKind
	Period                time.Time
	Success               bool
	ItemsCredited         int
	ItemsFailed           int
	TotalInterestCredited decimal.Decimal

	// FD runs only
	MaturedProcessed  int
	PrincipalReturned decimal.Decimal
}

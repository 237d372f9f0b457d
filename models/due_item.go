package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DueItem is one pending interest obligation for one account or deposit
// as of a processing date. For fixed deposits the credit account differs
// from the source: interest lands on the linked savings account.
type DueItem struct {
	SourceID        int64
	CreditAccountID int64
	Amount          decimal.Decimal
	PeriodDays      int
	Rate            decimal.Decimal // annual percentage used for the cycle
	PlanName        string
	AsOfDate        time.Time
}

// RateLabel renders the plan and rate for ledger memos,
// e.g. "5.5% Fixed Saver"
func (d *DueItem) RateLabel() string {
	return fmt.Sprintf("%s%% %s", d.Rate.String(), d.PlanName)
}

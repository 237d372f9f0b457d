package repository

import (
	"context"
	"fmt"
	"time"

	"microbank/models"
	"microbank/service"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ledgerGateway implements the service.LedgerGateway interface against
// the relational ledger. Every method runs on the unit of work's
// transaction, so a run's postings and audit rows commit or roll back
// together.
//
// Validation failures are surfaced through query shape (a conditional
// UPDATE matching no rows) rather than constraint violations, keeping
// the surrounding transaction usable after a rejected posting.
type ledgerGateway struct {
	tx pgx.Tx
}

func newLedgerGatewayWithTx(tx pgx.Tx) *ledgerGateway {
	return &ledgerGateway{tx: tx}
}

// savingsDueQuery surfaces accounts whose last credited calculation (or
// opening date, for never-credited accounts) is at least a full 30-day
// cycle before the as-of date. Interest is simple annual interest
// prorated over the elapsed days, rounded to cents.
const savingsDueQuery = `
	SELECT a.id,
	       a.id,
	       ROUND(a.balance * a.interest_rate / 100.0 * d.period_days / 365.0, 2),
	       d.period_days,
	       a.interest_rate,
	       a.plan_name
	FROM accounts a
	CROSS JOIN LATERAL (
	    SELECT $1::date - COALESCE(
	        (SELECT MAX(ic.calculation_date)
	         FROM interest_calculations ic
	         WHERE ic.kind = 'savings'
	           AND ic.source_id = a.id
	           AND ic.status = 'credited'),
	        a.opened_at::date
	    ) AS period_days
	) d
	WHERE a.status = 'active'
	  AND d.period_days >= 30
	ORDER BY a.id
`

// fdDueQuery is the fixed deposit equivalent. Interest lands on the
// linked savings account, and accrual is capped at the maturity date so
// the final cycle can be shorter than 30 days once the deposit matures.
const fdDueQuery = `
	SELECT fd.id,
	       fd.account_id,
	       ROUND(fd.principal * fd.interest_rate / 100.0 * d.period_days / 365.0, 2),
	       d.period_days,
	       fd.interest_rate,
	       fd.plan_name
	FROM fixed_deposits fd
	CROSS JOIN LATERAL (
	    SELECT LEAST($1::date, fd.maturity_date) - COALESCE(
	        (SELECT MAX(ic.calculation_date)
	         FROM interest_calculations ic
	         WHERE ic.kind = 'fd'
	           AND ic.source_id = fd.id
	           AND ic.status = 'credited'),
	        fd.start_date
	    ) AS period_days
	) d
	WHERE fd.status = 'active'
	  AND d.period_days >= 30
	ORDER BY fd.id
`

// ComputeDue returns all sources with interest owed as of the given date.
// Anchoring on the last credited calculation makes reruns naturally
// idempotent: once a cycle is credited it is never surfaced again.
func (g *ledgerGateway) ComputeDue(ctx context.Context, kind models.InterestKind, asOfDate time.Time) ([]*models.DueItem, error) {
	var query string
	switch kind {
	case models.InterestKindSavings:
		query = savingsDueQuery
	case models.InterestKindFD:
		query = fdDueQuery
	default:
		return nil, fmt.Errorf("unknown interest kind: %q", string(kind))
	}

	rows, err := g.tx.Query(ctx, query, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute due %s interest: %w", kind, err)
	}
	defer rows.Close()

	var items []*models.DueItem
	for rows.Next() {
		item := &models.DueItem{AsOfDate: asOfDate}
		if err := rows.Scan(
			&item.SourceID,
			&item.CreditAccountID,
			&item.Amount,
			&item.PeriodDays,
			&item.Rate,
			&item.PlanName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan due item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read due items: %w", err)
	}

	return items, nil
}

// PostInterestCredit posts an interest credit to an account, updating
// the balance and writing the ledger transaction atomically.
func (g *ledgerGateway) PostInterestCredit(ctx context.Context, accountID int64, amount decimal.Decimal, memo string, actorID int64) (int64, error) {
	return g.postCredit(ctx, accountID, amount, models.TransactionKindInterestCredit, memo, actorID)
}

// postCredit is the validated ledger-posting primitive shared by
// interest credits and principal returns.
func (g *ledgerGateway) postCredit(ctx context.Context, accountID int64, amount decimal.Decimal, kind models.TransactionKind, memo string, actorID int64) (int64, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("credit amount must be positive, got %s: %w", amount.String(), service.ErrPostingRejected)
	}

	var creditedID int64
	err := g.tx.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2 AND status = 'active'
		RETURNING id
	`, amount, accountID).Scan(&creditedID)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("account %d not found or not active: %w", accountID, service.ErrPostingRejected)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to credit account %d: %w", accountID, err)
	}

	var txID int64
	err = g.tx.QueryRow(ctx, `
		INSERT INTO transactions (account_id, kind, amount, description, performed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, accountID, kind, amount, memo, actorID).Scan(&txID)
	if err != nil {
		return 0, fmt.Errorf("failed to record transaction for account %d: %w", accountID, err)
	}

	return txID, nil
}

// SweepMaturedDeposits closes every active deposit past its maturity
// date and posts the principal back to the linked savings account.
// Matured deposits are excluded from the UPDATE, so the sweep never
// re-processes a deposit.
func (g *ledgerGateway) SweepMaturedDeposits(ctx context.Context, asOfDate time.Time, actorID int64) (*models.MaturitySummary, error) {
	rows, err := g.tx.Query(ctx, `
		UPDATE fixed_deposits
		SET status = 'matured'
		WHERE status = 'active' AND maturity_date <= $1::date
		RETURNING id, account_id, principal, plan_name
	`, asOfDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sweep matured deposits: %w", err)
	}

	type maturedDeposit struct {
		id        int64
		accountID int64
		principal decimal.Decimal
		planName  string
	}

	var matured []maturedDeposit
	for rows.Next() {
		var d maturedDeposit
		if err := rows.Scan(&d.id, &d.accountID, &d.principal, &d.planName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan matured deposit: %w", err)
		}
		matured = append(matured, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matured deposits: %w", err)
	}

	summary := &models.MaturitySummary{TotalPrincipalReturned: decimal.Zero}
	for _, d := range matured {
		memo := fmt.Sprintf("FD Maturity - Principal Return (%s, deposit %d)", d.planName, d.id)
		if _, err := g.postCredit(ctx, d.accountID, d.principal, models.TransactionKindPrincipalReturn, memo, actorID); err != nil {
			return nil, fmt.Errorf("failed to return principal for deposit %d: %w", d.id, err)
		}
		summary.ProcessedCount++
		summary.TotalPrincipalReturned = summary.TotalPrincipalReturned.Add(d.principal)
	}

	return summary, nil
}

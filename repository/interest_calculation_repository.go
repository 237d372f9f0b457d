package repository

import (
	"context"
	"fmt"
	"time"

	"microbank/models"

	"github.com/jackc/pgx/v5"
)

// interestCalculationRepository implements the
// service.InterestCalculationRepository interface. The table is
// append-only: there is deliberately no update method.
type interestCalculationRepository struct {
	tx pgx.Tx
}

func newInterestCalculationRepositoryWithTx(tx pgx.Tx) *interestCalculationRepository {
	return &interestCalculationRepository{tx: tx}
}

// Record inserts one calculation outcome
func (r *interestCalculationRepository) Record(ctx context.Context, calc *models.InterestCalculation) error {
	// Normalize to a date-only value
	calc.CalculationDate = time.Date(calc.CalculationDate.Year(), calc.CalculationDate.Month(),
		calc.CalculationDate.Day(), 0, 0, 0, 0, time.UTC)

	err := r.tx.QueryRow(ctx, `
		INSERT INTO interest_calculations
		(kind, source_id, credit_account_id, calculation_date, amount, period_days, rate, plan_name, status, credited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`,
		calc.Kind,
		calc.SourceID,
		calc.CreditAccountID,
		calc.CalculationDate,
		calc.Amount,
		calc.PeriodDays,
		calc.Rate,
		calc.PlanName,
		calc.Status,
		calc.CreditedAt,
	).Scan(&calc.ID, &calc.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record %s calculation for source %d: %w",
			calc.Kind, calc.SourceID, err)
	}

	return nil
}

// GetBySource returns calculation history for one source, newest first
func (r *interestCalculationRepository) GetBySource(ctx context.Context, kind models.InterestKind, sourceID int64, limit int) ([]*models.InterestCalculation, error) {
	rows, err := r.tx.Query(ctx, `
		SELECT id, kind, source_id, credit_account_id, calculation_date,
		       amount, period_days, rate, plan_name, status, credited_at, created_at
		FROM interest_calculations
		WHERE kind = $1 AND source_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, kind, sourceID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculations for source %d: %w", sourceID, err)
	}
	defer rows.Close()

	return scanCalculations(rows)
}

// GetByDate returns all calculations recorded for a calculation date
func (r *interestCalculationRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.InterestCalculation, error) {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := r.tx.Query(ctx, `
		SELECT id, kind, source_id, credit_account_id, calculation_date,
		       amount, period_days, rate, plan_name, status, credited_at, created_at
		FROM interest_calculations
		WHERE calculation_date = $1
		ORDER BY id
	`, dateOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get calculations for date %s: %w",
			dateOnly.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanCalculations(rows)
}

func scanCalculations(rows pgx.Rows) ([]*models.InterestCalculation, error) {
	var calcs []*models.InterestCalculation
	for rows.Next() {
		var calc models.InterestCalculation
		if err := rows.Scan(
			&calc.ID,
			&calc.Kind,
			&calc.SourceID,
			&calc.CreditAccountID,
			&calc.CalculationDate,
			&calc.Amount,
			&calc.PeriodDays,
			&calc.Rate,
			&calc.PlanName,
			&calc.Status,
			&calc.CreditedAt,
			&calc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calculation: %w", err)
		}
		calcs = append(calcs, &calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calculations: %w", err)
	}

	return calcs, nil
}

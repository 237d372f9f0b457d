package repository

import (
	"context"
	"fmt"

	"microbank/models"

	"github.com/jackc/pgx/v5"
)

// fixedDepositRepository implements the service.FixedDepositRepository interface
type fixedDepositRepository struct {
	tx pgx.Tx
}

func newFixedDepositRepositoryWithTx(tx pgx.Tx) *fixedDepositRepository {
	return &fixedDepositRepository{tx: tx}
}

// Create creates a new fixed deposit
func (r *fixedDepositRepository) Create(ctx context.Context, deposit *models.FixedDeposit) error {
	if deposit.Status == "" {
		deposit.Status = models.FixedDepositStatusActive
	}

	err := r.tx.QueryRow(ctx, `
		INSERT INTO fixed_deposits (account_id, plan_name, interest_rate, principal, start_date, maturity_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`,
		deposit.AccountID,
		deposit.PlanName,
		deposit.InterestRate,
		deposit.Principal,
		deposit.StartDate,
		deposit.MaturityDate,
		deposit.Status,
	).Scan(&deposit.ID, &deposit.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create fixed deposit: %w", err)
	}

	return nil
}

// GetByID retrieves a deposit by its ID
func (r *fixedDepositRepository) GetByID(ctx context.Context, id int64) (*models.FixedDeposit, error) {
	var deposit models.FixedDeposit

	err := r.tx.QueryRow(ctx, `
		SELECT id, account_id, plan_name, interest_rate, principal, start_date, maturity_date, status, created_at
		FROM fixed_deposits
		WHERE id = $1
	`, id).Scan(
		&deposit.ID,
		&deposit.AccountID,
		&deposit.PlanName,
		&deposit.InterestRate,
		&deposit.Principal,
		&deposit.StartDate,
		&deposit.MaturityDate,
		&deposit.Status,
		&deposit.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixed deposit %d: %w", id, err)
	}

	return &deposit, nil
}

// GetByAccount returns all deposits linked to an account
func (r *fixedDepositRepository) GetByAccount(ctx context.Context, accountID int64) ([]*models.FixedDeposit, error) {
	rows, err := r.tx.Query(ctx, `
		SELECT id, account_id, plan_name, interest_rate, principal, start_date, maturity_date, status, created_at
		FROM fixed_deposits
		WHERE account_id = $1
		ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get fixed deposits for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var deposits []*models.FixedDeposit
	for rows.Next() {
		var deposit models.FixedDeposit
		if err := rows.Scan(
			&deposit.ID,
			&deposit.AccountID,
			&deposit.PlanName,
			&deposit.InterestRate,
			&deposit.Principal,
			&deposit.StartDate,
			&deposit.MaturityDate,
			&deposit.Status,
			&deposit.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fixed deposit: %w", err)
		}
		deposits = append(deposits, &deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fixed deposits: %w", err)
	}

	return deposits, nil
}

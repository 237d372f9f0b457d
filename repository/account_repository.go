package repository

import (
	"context"
	"fmt"

	"microbank/models"

	"github.com/jackc/pgx/v5"
)

// accountRepository implements the service.AccountRepository interface
type accountRepository struct {
	tx pgx.Tx
}

func newAccountRepositoryWithTx(tx pgx.Tx) *accountRepository {
	return &accountRepository{tx: tx}
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if account.Status == "" {
		account.Status = models.AccountStatusActive
	}
	if account.OpenedAt.IsZero() {
		err := r.tx.QueryRow(ctx, `
			INSERT INTO accounts (holder_name, plan_name, interest_rate, balance, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, opened_at, updated_at
		`, account.HolderName, account.PlanName, account.InterestRate, account.Balance, account.Status,
		).Scan(&account.ID, &account.OpenedAt, &account.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	}

	err := r.tx.QueryRow(ctx, `
		INSERT INTO accounts (holder_name, plan_name, interest_rate, balance, status, opened_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, updated_at
	`, account.HolderName, account.PlanName, account.InterestRate, account.Balance, account.Status, account.OpenedAt,
	).Scan(&account.ID, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account

	err := r.tx.QueryRow(ctx, `
		SELECT id, holder_name, plan_name, interest_rate, balance, status, opened_at, updated_at
		FROM accounts
		WHERE id = $1
	`, id).Scan(
		&account.ID,
		&account.HolderName,
		&account.PlanName,
		&account.InterestRate,
		&account.Balance,
		&account.Status,
		&account.OpenedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}

	return &account, nil
}

// UpdateStatus transitions an account's lifecycle state
func (r *accountRepository) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	tag, err := r.tx.Exec(ctx, `
		UPDATE accounts SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update account %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", id)
	}

	return nil
}

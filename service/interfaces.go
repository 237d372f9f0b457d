package service

import (
	"context"
	"errors"
	"time"

	"microbank/events"
	"microbank/models"

	"github.com/shopspring/decimal"
)

// ErrPostingRejected marks a ledger posting refused by validation
// (unknown account, account not active, non-positive amount). Rejections
// are item-level: the batch records a failed calculation and moves on.
// Any other posting error is treated as run-fatal.
var ErrPostingRejected = errors.New("ledger posting rejected")

// LedgerGateway is the system of record for balances and postings. All
// methods operate inside the unit of work's transaction.
type LedgerGateway interface {
	// ComputeDue returns every source with interest owed as of the given
	// date: a full 30-day cycle (or more) has elapsed since the last
	// credited calculation. Pure read, no side effects.
	ComputeDue(ctx context.Context, kind models.InterestKind, asOfDate time.Time) ([]*models.DueItem, error)

	// PostInterestCredit posts a validated interest credit to an account
	// and returns the ledger transaction ID. Validation failures wrap
	// ErrPostingRejected.
	PostInterestCredit(ctx context.Context, accountID int64, amount decimal.Decimal, memo string, actorID int64) (int64, error)

	// SweepMaturedDeposits closes deposits past their maturity date and
	// returns principal to the linked savings accounts. Idempotent: an
	// already-matured deposit is never swept again.
	SweepMaturedDeposits(ctx context.Context, asOfDate time.Time, actorID int64) (*models.MaturitySummary, error)
}

// InterestCalculationRepository is the append-only audit trail of
// interest processing attempts
type InterestCalculationRepository interface {
	// Record inserts one calculation outcome. Rows are never updated.
	Record(ctx context.Context, calc *models.InterestCalculation) error

	// GetBySource returns calculation history for one source, newest first
	GetBySource(ctx context.Context, kind models.InterestKind, sourceID int64, limit int) ([]*models.InterestCalculation, error)

	// GetByDate returns all calculations recorded for a calculation date
	GetByDate(ctx context.Context, date time.Time) ([]*models.InterestCalculation, error)
}

// AccountRepository defines the interface for savings account data access
type AccountRepository interface {
	// Create creates a new account
	Create(ctx context.Context, account *models.Account) error

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*models.Account, error)

	// UpdateStatus transitions an account's lifecycle state
	UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error
}

// FixedDepositRepository defines the interface for fixed deposit data access
type FixedDepositRepository interface {
	// Create creates a new fixed deposit
	Create(ctx context.Context, deposit *models.FixedDeposit) error

	// GetByID retrieves a deposit by its ID
	GetByID(ctx context.Context, id int64) (*models.FixedDeposit, error)

	// GetByAccount returns all deposits linked to an account
	GetByAccount(ctx context.Context, accountID int64) ([]*models.FixedDeposit, error)
}

// InterestService defines the interface for interest batch operations
type InterestService interface {
	// RunInterestBatch executes one complete interest run for a kind and
	// as-of date. A zero asOfDate defaults to the current UTC date. The
	// returned summary is always non-nil; Success is false when the run
	// was rolled back.
	RunInterestBatch(ctx context.Context, kind models.InterestKind, asOfDate time.Time) (*models.RunSummary, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	LedgerGateway() LedgerGateway
	InterestCalculationRepository() InterestCalculationRepository
	AccountRepository() AccountRepository
	FixedDepositRepository() FixedDepositRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}

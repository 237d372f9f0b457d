package service

import (
	"context"
	"time"

	"microbank/events"
	"microbank/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLedgerGateway is a mock implementation of LedgerGateway
type MockLedgerGateway struct {
	mock.Mock
}

func (m *MockLedgerGateway) ComputeDue(ctx context.Context, kind models.InterestKind, asOfDate time.Time) ([]*models.DueItem, error) {
	args := m.Called(ctx, kind, asOfDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DueItem), args.Error(1)
}

func (m *MockLedgerGateway) PostInterestCredit(ctx context.Context, accountID int64, amount decimal.Decimal, memo string, actorID int64) (int64, error) {
	args := m.Called(ctx, accountID, amount, memo, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerGateway) SweepMaturedDeposits(ctx context.Context, asOfDate time.Time, actorID int64) (*models.MaturitySummary, error) {
	args := m.Called(ctx, asOfDate, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaturitySummary), args.Error(1)
}

// MockInterestCalculationRepository is a mock implementation of InterestCalculationRepository
type MockInterestCalculationRepository struct {
	mock.Mock
}

func (m *MockInterestCalculationRepository) Record(ctx context.Context, calc *models.InterestCalculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockInterestCalculationRepository) GetBySource(ctx context.Context, kind models.InterestKind, sourceID int64, limit int) ([]*models.InterestCalculation, error) {
	args := m.Called(ctx, kind, sourceID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InterestCalculation), args.Error(1)
}

func (m *MockInterestCalculationRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.InterestCalculation, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InterestCalculation), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockFixedDepositRepository is a mock implementation of FixedDepositRepository
type MockFixedDepositRepository struct {
	mock.Mock
}

func (m *MockFixedDepositRepository) Create(ctx context.Context, deposit *models.FixedDeposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *MockFixedDepositRepository) GetByID(ctx context.Context, id int64) (*models.FixedDeposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FixedDeposit), args.Error(1)
}

func (m *MockFixedDepositRepository) GetByAccount(ctx context.Context, accountID int64) ([]*models.FixedDeposit, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FixedDeposit), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// noopEventPublisher drops events; used by MockUnitOfWork when a test
// does not assert on published events.
type noopEventPublisher struct{}

func (noopEventPublisher) Publish(event events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock

	gateway     LedgerGateway
	calcRepo    InterestCalculationRepository
	accountRepo AccountRepository
	depositRepo FixedDepositRepository
	eventBus    EventPublisher
}

// SetRepositories wires the repositories returned by the getters. A nil
// event publisher defaults to a no-op one.
func (m *MockUnitOfWork) SetRepositories(gateway LedgerGateway, calcRepo InterestCalculationRepository, eventBus EventPublisher) {
	m.gateway = gateway
	m.calcRepo = calcRepo
	if eventBus == nil {
		eventBus = noopEventPublisher{}
	}
	m.eventBus = eventBus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) LedgerGateway() LedgerGateway {
	return m.gateway
}

func (m *MockUnitOfWork) InterestCalculationRepository() InterestCalculationRepository {
	return m.calcRepo
}

func (m *MockUnitOfWork) AccountRepository() AccountRepository {
	return m.accountRepo
}

func (m *MockUnitOfWork) FixedDepositRepository() FixedDepositRepository {
	return m.depositRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

package repository

import (
	"context"
	"testing"
	"time"

	"microbank/models"
	"microbank/repository/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestCalculationRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("credited outcome", func(t *testing.T) {
		uow := beginTestUow(t, testDB)

		account := testutil.CreateTestAccount("alice")
		require.NoError(t, uow.AccountRepository().Create(ctx, account))

		calc := testutil.CreateTestCalculation(models.InterestKindSavings, account.ID, account.ID, testAsOf)
		require.NoError(t, uow.InterestCalculationRepository().Record(ctx, calc))

		assert.NotZero(t, calc.ID)
		assert.False(t, calc.CreatedAt.IsZero())

		history, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindSavings, account.ID, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.CalculationStatusCredited, history[0].Status)
		require.NotNil(t, history[0].CreditedAt)
		assert.True(t, history[0].Amount.Equal(calc.Amount))
	})

	t.Run("failed outcome has no credited timestamp", func(t *testing.T) {
		uow := beginTestUow(t, testDB)

		account := testutil.CreateTestAccount("bob")
		require.NoError(t, uow.AccountRepository().Create(ctx, account))

		calc := testutil.CreateTestCalculation(models.InterestKindFD, 42, account.ID, testAsOf)
		calc.Status = models.CalculationStatusFailed
		calc.CreditedAt = nil
		require.NoError(t, uow.InterestCalculationRepository().Record(ctx, calc))

		history, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindFD, 42, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.CalculationStatusFailed, history[0].Status)
		assert.Nil(t, history[0].CreditedAt)
	})

	t.Run("history is append-only", func(t *testing.T) {
		uow := beginTestUow(t, testDB)

		account := testutil.CreateTestAccount("carol")
		require.NoError(t, uow.AccountRepository().Create(ctx, account))

		// A failed attempt followed by a credited retry on a later run:
		// both rows survive.
		failed := testutil.CreateTestCalculation(models.InterestKindSavings, account.ID, account.ID, testAsOf)
		failed.Status = models.CalculationStatusFailed
		failed.CreditedAt = nil
		require.NoError(t, uow.InterestCalculationRepository().Record(ctx, failed))

		credited := testutil.CreateTestCalculation(models.InterestKindSavings, account.ID, account.ID, testAsOf.AddDate(0, 0, 1))
		require.NoError(t, uow.InterestCalculationRepository().Record(ctx, credited))

		history, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindSavings, account.ID, 10)
		require.NoError(t, err)
		require.Len(t, history, 2)

		// Newest first.
		assert.Equal(t, models.CalculationStatusCredited, history[0].Status)
		assert.Equal(t, models.CalculationStatusFailed, history[1].Status)
	})
}

func TestInterestCalculationRepository_GetByDate(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	uow := beginTestUow(t, testDB)

	account := testutil.CreateTestAccount("dave")
	require.NoError(t, uow.AccountRepository().Create(ctx, account))

	onDate := testutil.CreateTestCalculation(models.InterestKindSavings, account.ID, account.ID, testAsOf)
	require.NoError(t, uow.InterestCalculationRepository().Record(ctx, onDate))

	otherDate := testutil.CreateTestCalculation(models.InterestKindSavings, account.ID, account.ID, testAsOf.AddDate(0, 0, -30))
	require.NoError(t, uow.InterestCalculationRepository().Record(ctx, otherDate))

	// Querying with a time-of-day still matches the normalized date.
	calcs, err := uow.InterestCalculationRepository().GetByDate(ctx, testAsOf.Add(14*time.Hour))
	require.NoError(t, err)
	require.Len(t, calcs, 1)
	assert.Equal(t, onDate.ID, calcs[0].ID)
}

func TestUnitOfWork_RollbackDiscardsRecords(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	var accountID int64

	// Commit an account in one unit of work.
	{
		uow := beginTestUow(t, testDB)
		account := testutil.CreateTestAccount("erin")
		require.NoError(t, uow.AccountRepository().Create(ctx, account))
		require.NoError(t, uow.Commit())
		accountID = account.ID
	}

	// Record a calculation, then roll back.
	{
		uow := beginTestUow(t, testDB)
		calc := testutil.CreateTestCalculation(models.InterestKindSavings, accountID, accountID, testAsOf)
		require.NoError(t, uow.InterestCalculationRepository().Record(ctx, calc))
		require.NoError(t, uow.Rollback())
	}

	// Nothing from the rolled-back run survives.
	{
		uow := beginTestUow(t, testDB)
		history, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindSavings, accountID, 10)
		require.NoError(t, err)
		assert.Empty(t, history)

		balance, err := uow.AccountRepository().GetByID(ctx, accountID)
		require.NoError(t, err)
		assert.True(t, balance.Balance.Equal(decimal.NewFromInt(10000)))
	}
}

package service_test

import (
	"context"
	"testing"
	"time"

	"microbank/events"
	"microbank/models"
	"microbank/repository"
	"microbank/repository/testutil"
	"microbank/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterestBatch_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()
	asOf := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	uowFactory := repository.NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	interestService := service.NewInterestService(uowFactory, 1)

	// Seed: one savings account due for interest, one savings account
	// holding two fixed deposits (one accruing, one matured), and one
	// closed account whose deposit's credit will be rejected.
	var savingsAccount, fdAccount, closedAccount *models.Account
	var accruingFD, maturedFD, strandedFD *models.FixedDeposit
	{
		uow := uowFactory.Create()
		require.NoError(t, uow.Begin(ctx))

		savingsAccount = testutil.CreateTestAccountOpenedAt("alice", asOf.AddDate(0, 0, -40))
		require.NoError(t, uow.AccountRepository().Create(ctx, savingsAccount))

		fdAccount = testutil.CreateTestAccountOpenedAt("bob", asOf.AddDate(0, 0, -10))
		require.NoError(t, uow.AccountRepository().Create(ctx, fdAccount))

		accruingFD = testutil.CreateTestFixedDeposit(fdAccount.ID, asOf.AddDate(0, 0, -35), 12)
		require.NoError(t, uow.FixedDepositRepository().Create(ctx, accruingFD))

		maturedFD = testutil.CreateTestFixedDeposit(fdAccount.ID, asOf.AddDate(0, -13, 0), 12)
		require.NoError(t, uow.FixedDepositRepository().Create(ctx, maturedFD))

		closedAccount = testutil.CreateTestAccountOpenedAt("carol", asOf.AddDate(0, 0, -90))
		require.NoError(t, uow.AccountRepository().Create(ctx, closedAccount))
		strandedFD = testutil.CreateTestFixedDeposit(closedAccount.ID, asOf.AddDate(0, 0, -40), 12)
		require.NoError(t, uow.FixedDepositRepository().Create(ctx, strandedFD))
		require.NoError(t, uow.AccountRepository().UpdateStatus(ctx, closedAccount.ID, models.AccountStatusClosed))

		require.NoError(t, uow.Commit())
	}

	t.Run("savings run credits due accounts", func(t *testing.T) {
		summary, err := interestService.RunInterestBatch(ctx, models.InterestKindSavings, asOf)
		require.NoError(t, err)

		assert.True(t, summary.Success)
		assert.Equal(t, 1, summary.ItemsCredited)
		assert.Equal(t, 0, summary.ItemsFailed)
		// 10000 * 4% * 40/365
		assert.True(t, summary.TotalInterestCredited.Equal(decimal.NewFromFloat(43.84)),
			"unexpected total %s", summary.TotalInterestCredited)

		uow := uowFactory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		account, err := uow.AccountRepository().GetByID(ctx, savingsAccount.ID)
		require.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.NewFromFloat(10043.84)))

		history, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindSavings, savingsAccount.ID, 10)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, models.CalculationStatusCredited, history[0].Status)
	})

	t.Run("savings rerun is idempotent", func(t *testing.T) {
		summary, err := interestService.RunInterestBatch(ctx, models.InterestKindSavings, asOf)
		require.NoError(t, err)

		assert.True(t, summary.Success)
		assert.Equal(t, 0, summary.ItemsCredited)
		assert.True(t, summary.TotalInterestCredited.IsZero())
	})

	t.Run("fd run credits, isolates rejections, sweeps maturities", func(t *testing.T) {
		summary, err := interestService.RunInterestBatch(ctx, models.InterestKindFD, asOf)
		require.NoError(t, err)

		assert.True(t, summary.Success)
		// accruingFD and maturedFD credited to the active linked account;
		// strandedFD's credit rejected because its account is closed.
		assert.Equal(t, 2, summary.ItemsCredited)
		assert.Equal(t, 1, summary.ItemsFailed)
		assert.Equal(t, 1, summary.MaturedProcessed)
		assert.True(t, summary.PrincipalReturned.Equal(maturedFD.Principal))

		uow := uowFactory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		failedHistory, err := uow.InterestCalculationRepository().GetBySource(ctx, models.InterestKindFD, strandedFD.ID, 10)
		require.NoError(t, err)
		require.Len(t, failedHistory, 1)
		assert.Equal(t, models.CalculationStatusFailed, failedHistory[0].Status)
		assert.Nil(t, failedHistory[0].CreditedAt)

		swept, err := uow.FixedDepositRepository().GetByID(ctx, maturedFD.ID)
		require.NoError(t, err)
		assert.Equal(t, models.FixedDepositStatusMatured, swept.Status)
	})
}

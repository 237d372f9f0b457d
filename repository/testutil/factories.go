package testutil

import (
	"time"

	"microbank/models"

	"github.com/shopspring/decimal"
)

// CreateTestAccount creates an active savings account with default values
func CreateTestAccount(holderName string) *models.Account {
	return &models.Account{
		HolderName:   holderName,
		PlanName:     "Standard Savings",
		InterestRate: decimal.NewFromFloat(4.0),
		Balance:      decimal.NewFromInt(10000),
		Status:       models.AccountStatusActive,
	}
}

// CreateTestAccountOpenedAt creates an account with a specific opening
// date, for exercising due-cycle boundaries
func CreateTestAccountOpenedAt(holderName string, openedAt time.Time) *models.Account {
	account := CreateTestAccount(holderName)
	account.OpenedAt = openedAt
	return account
}

// CreateTestFixedDeposit creates an active fixed deposit linked to an account
func CreateTestFixedDeposit(accountID int64, startDate time.Time, termMonths int) *models.FixedDeposit {
	return &models.FixedDeposit{
		AccountID:    accountID,
		PlanName:     "Fixed Saver",
		InterestRate: decimal.NewFromFloat(5.5),
		Principal:    decimal.NewFromInt(15000),
		StartDate:    startDate,
		MaturityDate: startDate.AddDate(0, termMonths, 0),
		Status:       models.FixedDepositStatusActive,
	}
}

// CreateTestCalculation creates a credited calculation outcome
func CreateTestCalculation(kind models.InterestKind, sourceID, creditAccountID int64, date time.Time) *models.InterestCalculation {
	creditedAt := date
	return &models.InterestCalculation{
		Kind:            kind,
		SourceID:        sourceID,
		CreditAccountID: creditAccountID,
		CalculationDate: date,
		Amount:          decimal.NewFromFloat(32.88),
		PeriodDays:      30,
		Rate:            decimal.NewFromFloat(4.0),
		PlanName:        "Standard Savings",
		Status:          models.CalculationStatusCredited,
		CreditedAt:      &creditedAt,
	}
}

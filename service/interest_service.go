package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"microbank/events"
	"microbank/models"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type interestService struct {
	uowFactory    UnitOfWorkFactory
	systemActorID int64
}

// NewInterestService creates a new interest batch service. systemActorID
// is the identity recorded as the performer of automated postings.
func NewInterestService(uowFactory UnitOfWorkFactory, systemActorID int64) InterestService {
	return &interestService{
		uowFactory:    uowFactory,
		systemActorID: systemActorID,
	}
}

// RunInterestBatch executes one complete interest run inside a single
// transaction. Item-level posting rejections are recorded as failed and
// do not abort the run; everything else rolls the whole run back.
func (s *interestService) RunInterestBatch(ctx context.Context, kind models.InterestKind, asOfDate time.Time) (*models.RunSummary, error) {
	if err := kind.Validate(); err != nil {
		return failedSummary(kind, asOfDate), err
	}
	if asOfDate.IsZero() {
		asOfDate = time.Now().UTC()
	}
	asOfDate = time.Date(asOfDate.Year(), asOfDate.Month(), asOfDate.Day(), 0, 0, 0, 0, time.UTC)

	summary := &models.RunSummary{
		Kind:                  kind,
		Period:                asOfDate,
		TotalInterestCredited: decimal.Zero,
		PrincipalReturned:     decimal.Zero,
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return summary, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	items, err := uow.LedgerGateway().ComputeDue(ctx, kind, asOfDate)
	if err != nil {
		return summary, fmt.Errorf("failed to compute due interest: %w", err)
	}

	for _, item := range items {
		if item.Amount.IsZero() {
			// Zero-interest periods are not part of the audit trail.
			continue
		}
		if item.Amount.IsNegative() {
			log.WithFields(log.Fields{
				"kind":     kind,
				"sourceId": item.SourceID,
				"amount":   item.Amount.String(),
			}).Warn("Negative due amount from ledger, skipping item")
			continue
		}

		if err := s.processItem(ctx, uow, kind, item, summary); err != nil {
			return summary, err
		}
	}

	if kind == models.InterestKindFD {
		maturity, err := uow.LedgerGateway().SweepMaturedDeposits(ctx, asOfDate, s.systemActorID)
		if err != nil {
			return summary, fmt.Errorf("failed to sweep matured deposits: %w", err)
		}
		summary.MaturedProcessed = maturity.ProcessedCount
		summary.PrincipalReturned = maturity.TotalPrincipalReturned
	}

	uow.EventBus().Publish(events.InterestRunCompletedEvent{
		Kind:                  kind,
		Period:                asOfDate,
		ItemsCredited:         summary.ItemsCredited,
		ItemsFailed:           summary.ItemsFailed,
		TotalInterestCredited: summary.TotalInterestCredited,
		MaturedProcessed:      summary.MaturedProcessed,
		PrincipalReturned:     summary.PrincipalReturned,
	})

	if err := uow.Commit(); err != nil {
		return summary, fmt.Errorf("failed to commit interest run: %w", err)
	}

	summary.Success = true

	log.WithFields(log.Fields{
		"kind":             kind,
		"period":           asOfDate.Format("2006-01-02"),
		"itemsCredited":    summary.ItemsCredited,
		"itemsFailed":      summary.ItemsFailed,
		"totalInterest":    summary.TotalInterestCredited.String(),
		"maturedProcessed": summary.MaturedProcessed,
	}).Info("Interest run completed")

	return summary, nil
}

// processItem posts one interest credit and records the outcome. A
// posting rejection is isolated: a failed calculation is recorded and
// the run continues. Recorder failures are run-fatal since they break
// the audit contract.
func (s *interestService) processItem(ctx context.Context, uow UnitOfWork, kind models.InterestKind, item *models.DueItem, summary *models.RunSummary) error {
	memo := fmt.Sprintf("Monthly %s Interest - %s", kind.Label(), item.RateLabel())

	calc := &models.InterestCalculation{
		Kind:            kind,
		SourceID:        item.SourceID,
		CreditAccountID: item.CreditAccountID,
		CalculationDate: item.AsOfDate,
		Amount:          item.Amount,
		PeriodDays:      item.PeriodDays,
		Rate:            item.Rate,
		PlanName:        item.PlanName,
	}

	txID, err := uow.LedgerGateway().PostInterestCredit(ctx, item.CreditAccountID, item.Amount, memo, s.systemActorID)
	if err != nil {
		if !errors.Is(err, ErrPostingRejected) {
			return fmt.Errorf("failed to post interest for source %d: %w", item.SourceID, err)
		}

		log.WithFields(log.Fields{
			"kind":            kind,
			"sourceId":        item.SourceID,
			"creditAccountId": item.CreditAccountID,
			"amount":          item.Amount.String(),
			"error":           err.Error(),
		}).Warn("Interest posting rejected, recording failed calculation")

		calc.Status = models.CalculationStatusFailed
		if err := uow.InterestCalculationRepository().Record(ctx, calc); err != nil {
			return fmt.Errorf("failed to record failed calculation for source %d: %w", item.SourceID, err)
		}
		summary.ItemsFailed++
		return nil
	}

	now := time.Now().UTC()
	calc.Status = models.CalculationStatusCredited
	calc.CreditedAt = &now
	if err := uow.InterestCalculationRepository().Record(ctx, calc); err != nil {
		return fmt.Errorf("failed to record credited calculation for source %d: %w", item.SourceID, err)
	}

	uow.EventBus().Publish(events.InterestCreditedEvent{
		Kind:            kind,
		SourceID:        item.SourceID,
		CreditAccountID: item.CreditAccountID,
		Amount:          item.Amount,
		TransactionID:   txID,
	})

	summary.ItemsCredited++
	summary.TotalInterestCredited = summary.TotalInterestCredited.Add(item.Amount)

	log.WithFields(log.Fields{
		"kind":            kind,
		"sourceId":        item.SourceID,
		"creditAccountId": item.CreditAccountID,
		"amount":          item.Amount.String(),
		"periodDays":      item.PeriodDays,
		"transactionId":   txID,
	}).Info("Interest credited")

	return nil
}

func failedSummary(kind models.InterestKind, period time.Time) *models.RunSummary {
	return &models.RunSummary{
		Kind:                  kind,
		Period:                period,
		TotalInterestCredited: decimal.Zero,
		PrincipalReturned:     decimal.Zero,
	}
}

// Package accrual implements the daily batch that credits each active
// investment's return. The batch is idempotent per (investment, date):
// a unique constraint on daily earnings rejects a second credit for the
// same day, so re-running after a crash, or two schedulers racing, never
// double-pays.
package accrual

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/repository"
	investmentsvc "github.com/yieldvault/yieldvault/pkg/service/investment"
)

// Report summarizes one accrual run.
type Report struct {
	Date      time.Time
	Completed int // matured investments settled before accrual
	Processed int // investments credited today
	Skipped   int // already credited for the date, or zero return
	Failed    int // per-investment failures, logged and skipped
}

// Service runs the daily accrual batch.
type Service struct {
	uow         repository.UnitOfWork
	investments *investmentsvc.Service
	logger      *slog.Logger
}

// New creates an accrual Service.
func New(uow repository.UnitOfWork, investments *investmentsvc.Service, logger *slog.Logger) *Service {
	return &Service{uow: uow, investments: investments, logger: logger}
}

// RunDailyAccrual settles matured investments, then credits one day's
// return for every remaining active investment whose term covers date.
// Each investment commits in its own unit of work; a failure is counted
// and logged, and the batch moves on. Safe to re-invoke for the same
// date.
func (s *Service) RunDailyAccrual(ctx context.Context, date time.Time) (*Report, error) {
	date = ledger.Midnight(date)
	report := &Report{Date: date}

	completed, err := s.investments.CompleteMatured(ctx, date)
	report.Completed = completed
	if err != nil {
		s.logger.Error("maturity settlement had failures", "date", date, "error", err)
	}

	active, err := s.uow.Investments().ListActiveEndingAfter(ctx, date)
	if err != nil {
		return report, fmt.Errorf("list active investments: %w", err)
	}
	for _, inv := range active {
		switch err := s.accrueOne(ctx, inv.ID, date); {
		case err == nil:
			report.Processed++
		case errors.Is(err, errSkipped):
			report.Skipped++
		default:
			report.Failed++
			s.logger.Error("accrue investment", "investment_id", inv.ID, "date", date, "error", err)
		}
	}

	s.logger.Info("daily accrual finished",
		"date", date.Format("2006-01-02"),
		"completed", report.Completed, "processed", report.Processed,
		"skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// errSkipped marks an investment the run left alone: already credited for
// the date, no longer active, or a zero return. A skip is a reported
// no-op, not a failure.
var errSkipped = errors.New("accrual skipped")

func (s *Service) accrueOne(ctx context.Context, investmentID uuid.UUID, date time.Time) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Investments().GetForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		exists, err := uow.Earnings().ExistsForInvestment(ctx, inv.ID, date)
		if err != nil {
			return err
		}
		if exists {
			return errSkipped
		}
		p, err := uow.Plans().Get(ctx, inv.PlanID)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}
		amount, err := inv.DailyReturn(p)
		if err != nil {
			return err
		}
		if !amount.IsPositive() {
			return errSkipped
		}
		if err := uow.Earnings().Create(ctx, ledger.NewDailyEarning(inv.UserID, inv.ID, amount, date)); err != nil {
			// unique (investment, date) row landed between the check and
			// the insert; a concurrent run credited it
			if errors.Is(err, domain.ErrAlreadyExists) {
				return errSkipped
			}
			return err
		}
		w, err := uow.Wallets().GetByUserForUpdate(ctx, inv.UserID)
		if err != nil {
			return err
		}
		if err := w.CreditEarnings(amount); err != nil {
			return err
		}
		if err := uow.Wallets().Update(ctx, w); err != nil {
			return err
		}
		tx, err := ledger.NewTransaction(inv.UserID, ledger.TxReturn, amount, ledger.TxCompleted, &inv.ID)
		if err != nil {
			return err
		}
		return uow.Transactions().Create(ctx, tx)
	})
}

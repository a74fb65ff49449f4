// Package investment implements the investment lifecycle: funding a plan
// from the wallet, cancellation, and maturity completion. Creation debits
// the wallet and records the audit transaction in one unit of work, so a
// failed debit leaves no investment behind.
package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/repository"
	walletsvc "github.com/yieldvault/yieldvault/pkg/service/wallet"
)

// Service provides investment lifecycle operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an investment Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create places amount into planID for userID. The wallet is debited under
// a row lock, the investment activates immediately, and a completed
// investment-type transaction is written, all atomically.
func (s *Service) Create(ctx context.Context, userID, planID uuid.UUID, amount money.Money) (*investment.Investment, error) {
	var inv *investment.Investment
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		p, err := uow.Plans().Get(ctx, planID)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}
		if !p.IsActive {
			return fmt.Errorf("plan %s is inactive: %w", p.Name, domain.ErrValidation)
		}
		inv, err = investment.New(userID, p, amount, time.Now().UTC())
		if err != nil {
			return err
		}
		w, err := walletsvc.GetOrCreateForUpdate(ctx, uow, userID)
		if err != nil {
			return err
		}
		if err := w.Debit(amount); err != nil {
			return err
		}
		if err := uow.Wallets().Update(ctx, w); err != nil {
			return err
		}
		if err := uow.Investments().Create(ctx, inv); err != nil {
			return err
		}
		tx, err := ledger.NewTransaction(userID, ledger.TxDeposit, amount, ledger.TxCompleted, &inv.ID)
		if err != nil {
			return err
		}
		return uow.Transactions().Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("investment created",
		"investment_id", inv.ID, "user_id", userID,
		"plan_id", planID, "principal", amount.String(), "end_date", inv.EndDate)
	return inv, nil
}

// Get returns an investment, enforcing ownership unless the caller is an
// admin.
func (s *Service) Get(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) (*investment.Investment, error) {
	inv, err := s.uow.Investments().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && inv.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// ListByUser returns a user's investments newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	return s.uow.Investments().ListByUser(ctx, userID)
}

// Cancel transitions a pending or active investment to cancelled. The
// principal is not refunded.
func (s *Service) Cancel(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Investments().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !isAdmin && inv.UserID != callerID {
			return domain.ErrForbidden
		}
		if err := inv.Cancel(); err != nil {
			return err
		}
		return uow.Investments().Update(ctx, inv)
	})
	if err != nil {
		return err
	}
	s.logger.Info("investment cancelled", "investment_id", id)
	return nil
}

// Confirm marks a pending investment confirmed and active. Confirming an
// already confirmed investment is a no-op.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Investments().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if inv.IsConfirmed {
			return nil
		}
		inv.Confirm()
		return uow.Investments().Update(ctx, inv)
	})
}

// CompleteMatured completes every active investment whose term has elapsed
// as of now, crediting each wallet with the fixed total return. Each
// investment settles in its own unit of work; one failure does not block
// the rest. Returns the number completed and the first error encountered,
// if any.
func (s *Service) CompleteMatured(ctx context.Context, now time.Time) (int, error) {
	matured, err := s.uow.Investments().ListActiveMatured(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list matured investments: %w", err)
	}
	var completed int
	var firstErr error
	for _, inv := range matured {
		if err := s.completeOne(ctx, inv.ID); err != nil {
			s.logger.Error("complete matured investment", "investment_id", inv.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		completed++
	}
	return completed, firstErr
}

func (s *Service) completeOne(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		inv, err := uow.Investments().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		p, err := uow.Plans().Get(ctx, inv.PlanID)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}
		total, err := inv.Complete(p)
		if err != nil {
			// a concurrent run got here first
			if errors.Is(err, domain.ErrAlreadyProcessed) {
				return nil
			}
			return err
		}
		if total.IsPositive() {
			w, err := uow.Wallets().GetByUserForUpdate(ctx, inv.UserID)
			if err != nil {
				return err
			}
			if err := w.CreditEarnings(total); err != nil {
				return err
			}
			if err := uow.Wallets().Update(ctx, w); err != nil {
				return err
			}
			tx, err := ledger.NewTransaction(inv.UserID, ledger.TxReturn, total, ledger.TxCompleted, &inv.ID)
			if err != nil {
				return err
			}
			if err := uow.Transactions().Create(ctx, tx); err != nil {
				return err
			}
		}
		if err := uow.Investments().Update(ctx, inv); err != nil {
			return err
		}
		s.logger.Info("investment completed",
			"investment_id", inv.ID, "user_id", inv.UserID,
			"principal", inv.Principal.String(), "total_return", total.String())
		return nil
	})
}

// PlanFor loads the plan an investment references.
func (s *Service) PlanFor(ctx context.Context, inv *investment.Investment) (*plan.Plan, error) {
	return s.uow.Plans().Get(ctx, inv.PlanID)
}

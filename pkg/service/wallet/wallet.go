// Package wallet provides the wallet-facing ledger operations: lazy wallet
// creation, the withdrawal request flow, and admin settlement of pending
// transactions. Every balance mutation commits in the same unit of work as
// its transaction record.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"github.com/yieldvault/yieldvault/pkg/repository"
)

// Service provides wallet ledger operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a wallet Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// GetOrCreate returns the user's wallet, creating it on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	w, err := s.uow.Wallets().GetByUser(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	w, err = wallet.New(userID)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Wallets().Create(ctx, w); err != nil {
		// lost a create race; the winner's wallet is the wallet
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.uow.Wallets().GetByUser(ctx, userID)
		}
		return nil, err
	}
	s.logger.Info("wallet created", "user_id", userID, "referral_code", w.ReferralCode)
	return w, nil
}

// GetOrCreateForUpdate is GetOrCreate under a row lock, for use inside a
// unit of work.
func GetOrCreateForUpdate(ctx context.Context, uow repository.UnitOfWork, userID uuid.UUID) (*wallet.Wallet, error) {
	w, err := uow.Wallets().GetByUserForUpdate(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	w, err = wallet.New(userID)
	if err != nil {
		return nil, err
	}
	if err := uow.Wallets().Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// RequestWithdrawal files a pending withdrawal transaction. The wallet is
// not debited yet; the debit happens when an admin approves the
// transaction. The balance is prechecked so obviously unfundable requests
// fail immediately.
func (s *Service) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amount money.Money) (*ledger.Transaction, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	var tx *ledger.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		w, err := uow.Wallets().GetByUser(ctx, userID)
		if err != nil {
			return err
		}
		short, err := w.Balance.LessThan(amount)
		if err != nil {
			return err
		}
		if short {
			return domain.ErrInsufficientFunds
		}
		tx, err = ledger.NewTransaction(userID, ledger.TxWithdrawal, amount, ledger.TxPending, nil)
		if err != nil {
			return err
		}
		return uow.Transactions().Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("withdrawal requested", "user_id", userID, "amount", amount.String(), "reference", tx.ReferenceID)
	return tx, nil
}

// ApproveTransaction settles a pending transaction. For a withdrawal the
// wallet is debited here, under a row lock, in the same unit of work as
// the status flip; insufficient funds at approval time surfaces and
// leaves the transaction pending.
func (s *Service) ApproveTransaction(ctx context.Context, txID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tx, err := uow.Transactions().GetForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Status != ledger.TxPending {
			return fmt.Errorf("transaction %s: %w", tx.ReferenceID, domain.ErrAlreadyProcessed)
		}
		if tx.Type == ledger.TxWithdrawal {
			w, err := uow.Wallets().GetByUserForUpdate(ctx, tx.UserID)
			if err != nil {
				return err
			}
			if err := w.Debit(tx.Amount); err != nil {
				return err
			}
			if err := uow.Wallets().Update(ctx, w); err != nil {
				return err
			}
		}
		if err := tx.Complete(); err != nil {
			return err
		}
		return uow.Transactions().Update(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.logger.Info("transaction approved", "transaction_id", txID)
	return nil
}

// RejectTransaction settles a pending transaction as rejected. No balance
// change.
func (s *Service) RejectTransaction(ctx context.Context, txID uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tx, err := uow.Transactions().GetForUpdate(ctx, txID)
		if err != nil {
			return err
		}
		if tx.Status != ledger.TxPending {
			return fmt.Errorf("transaction %s: %w", tx.ReferenceID, domain.ErrAlreadyProcessed)
		}
		if err := tx.Reject(); err != nil {
			return err
		}
		return uow.Transactions().Update(ctx, tx)
	})
}

// Transactions lists a user's transactions newest first.
func (s *Service) Transactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Transaction, error) {
	return s.uow.Transactions().ListByUser(ctx, userID, limit, offset)
}

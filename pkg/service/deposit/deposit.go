// Package deposit implements the crypto deposit flow: a user files a
// claim against one of the platform's receiving addresses, an admin
// confirms or rejects it, and confirmation credits the wallet exactly
// once. The re-confirmation guard reads the persisted status under a row
// lock, never the caller's in-memory copy.
package deposit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/repository"
	walletsvc "github.com/yieldvault/yieldvault/pkg/service/wallet"
)

// Service provides deposit operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a deposit Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create files a pending deposit claim against addressID. The address
// must exist and be active. No balance changes until an admin confirms.
func (s *Service) Create(ctx context.Context, userID, addressID uuid.UUID, amount, amountCrypto money.Money, txHash string) (*ledger.Deposit, error) {
	addr, err := s.uow.Addresses().Get(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("load deposit address: %w", err)
	}
	if !addr.IsActive {
		return nil, fmt.Errorf("deposit address %s is inactive: %w", addr.Address, domain.ErrValidation)
	}
	d, err := ledger.NewDeposit(userID, addressID, amount, amountCrypto, txHash)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Deposits().Create(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("deposit filed",
		"deposit_id", d.ID, "user_id", userID, "network", addr.Network,
		"amount", amount.String(), "tx_hash", txHash)
	return d, nil
}

// Confirm credits the depositor's wallet and settles the claim, all in
// one unit of work. Confirming an already confirmed deposit reports
// ErrAlreadyConfirmed and changes nothing.
func (s *Service) Confirm(ctx context.Context, depositID, adminID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		d, err := uow.Deposits().GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}
		if err := d.Confirm(adminID, time.Now().UTC()); err != nil {
			return err
		}
		w, err := walletsvc.GetOrCreateForUpdate(ctx, uow, d.UserID)
		if err != nil {
			return err
		}
		if err := w.Credit(d.Amount); err != nil {
			return err
		}
		if err := uow.Wallets().Update(ctx, w); err != nil {
			return err
		}
		tx, err := ledger.NewTransaction(d.UserID, ledger.TxDeposit, d.Amount, ledger.TxCompleted, nil)
		if err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		return uow.Deposits().Update(ctx, d)
	})
	if err != nil {
		return err
	}
	s.logger.Info("deposit confirmed", "deposit_id", depositID, "admin_id", adminID)
	return nil
}

// Reject settles a claim as rejected. No balance change.
func (s *Service) Reject(ctx context.Context, depositID uuid.UUID) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		d, err := uow.Deposits().GetForUpdate(ctx, depositID)
		if err != nil {
			return err
		}
		if err := d.Reject(); err != nil {
			return err
		}
		return uow.Deposits().Update(ctx, d)
	})
	if err != nil {
		return err
	}
	s.logger.Info("deposit rejected", "deposit_id", depositID)
	return nil
}

// ListByUser returns a user's deposits newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Deposit, error) {
	return s.uow.Deposits().ListByUser(ctx, userID, limit, offset)
}

// ListByStatus returns the admin review queue for one status.
func (s *Service) ListByStatus(ctx context.Context, status ledger.DepositStatus, limit, offset int) ([]*ledger.Deposit, error) {
	return s.uow.Deposits().ListByStatus(ctx, status, limit, offset)
}

// ActiveAddresses returns the receiving addresses open for deposits.
func (s *Service) ActiveAddresses(ctx context.Context) ([]*ledger.DepositAddress, error) {
	return s.uow.Addresses().ListActive(ctx)
}

// AddAddress registers a receiving address on a supported network.
func (s *Service) AddAddress(ctx context.Context, network currency.Code, address string) (*ledger.DepositAddress, error) {
	a, err := ledger.NewDepositAddress(network, address)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Addresses().Create(ctx, a); err != nil {
		return nil, err
	}
	s.logger.Info("deposit address added", "network", network, "address", address)
	return a, nil
}

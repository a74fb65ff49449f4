// Package referral implements user registration with optional referral
// attribution and the periodic processor that converts matured referrals
// into bonus credits. A referral pays out once: the bonus_paid flag only
// moves false → true, checked under a row lock before crediting.
package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"github.com/yieldvault/yieldvault/pkg/domain/user"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"github.com/yieldvault/yieldvault/pkg/repository"
)

// Report summarizes one referral payout run.
type Report struct {
	Paid   int
	Zero   int // matured but no principal yet; retried next run
	Failed int
}

// Service provides registration and referral bonus processing.
type Service struct {
	uow          repository.UnitOfWork
	bonusPercent money.Percent
	maturity     time.Duration
	logger       *slog.Logger
}

// New creates a referral Service. bonusPercent and maturityDays come from
// configuration; pass referral.DefaultBonusPercent and
// referral.MaturityDays for the stock policy.
func New(uow repository.UnitOfWork, bonusPercent money.Percent, maturityDays int, logger *slog.Logger) *Service {
	return &Service{
		uow:          uow,
		bonusPercent: bonusPercent,
		maturity:     time.Duration(maturityDays) * 24 * time.Hour,
		logger:       logger,
	}
}

// Register creates a user, their wallet, and, when referralCode resolves
// to another user's wallet, the referral relationship, in one unit of
// work. An unknown code is ignored with a warning rather than failing
// registration.
func (s *Service) Register(ctx context.Context, username, email, password, referralCode string) (*user.User, error) {
	var u *user.User
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		var err error
		u, err = user.New(username, email, password)
		if err != nil {
			return err
		}
		if _, err := uow.Users().GetByUsername(ctx, username); err == nil {
			return fmt.Errorf("username %q: %w", username, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if _, err := uow.Users().GetByEmail(ctx, email); err == nil {
			return fmt.Errorf("email %q: %w", email, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := uow.Users().Create(ctx, u); err != nil {
			return err
		}
		w, err := wallet.New(u.ID)
		if err != nil {
			return err
		}
		if err := uow.Wallets().Create(ctx, w); err != nil {
			return err
		}
		if referralCode == "" {
			return nil
		}
		referrer, err := uow.Wallets().GetByReferralCode(ctx, referralCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("unknown referral code ignored", "code", referralCode, "username", username)
				return nil
			}
			return err
		}
		ref, err := referral.New(referrer.UserID, u.ID)
		if err != nil {
			s.logger.Warn("referral not recorded", "code", referralCode, "error", err)
			return nil
		}
		return uow.Referrals().Create(ctx, ref)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", u.ID, "username", username)
	return u, nil
}

// ProcessMaturedReferrals pays the bonus for every unpaid referral whose
// relationship is at least the maturity window old as of now. The bonus
// is a percentage of the referred user's total invested principal across
// all statuses, truncated. A zero bonus leaves the referral unpaid so a
// later run retries it. Each referral commits in its own unit of work.
func (s *Service) ProcessMaturedReferrals(ctx context.Context, now time.Time) (*Report, error) {
	cutoff := now.Add(-s.maturity)
	due, err := s.uow.Referrals().ListUnpaidCreatedBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list matured referrals: %w", err)
	}
	report := &Report{}
	for _, ref := range due {
		paid, err := s.payOne(ctx, ref.ReferredUserID)
		switch {
		case err != nil:
			report.Failed++
			s.logger.Error("pay referral bonus", "referrer_id", ref.ReferrerID, "referred_user_id", ref.ReferredUserID, "error", err)
		case paid:
			report.Paid++
		default:
			report.Zero++
		}
	}
	s.logger.Info("referral processing finished", "paid", report.Paid, "zero", report.Zero, "failed", report.Failed)
	return report, nil
}

func (s *Service) payOne(ctx context.Context, referredUserID uuid.UUID) (bool, error) {
	var paid bool
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ref, err := uow.Referrals().GetByReferredUser(ctx, referredUserID)
		if err != nil {
			return err
		}
		if ref.BonusPaid {
			return nil
		}
		principalMinor, err := uow.Investments().SumPrincipalByUser(ctx, ref.ReferredUserID)
		if err != nil {
			return err
		}
		principal := money.NewFromMinor(principalMinor, currency.DefaultCurrency)
		bonus, err := referral.Bonus(principal, s.bonusPercent)
		if err != nil {
			return err
		}
		if !bonus.IsPositive() {
			return nil
		}
		w, err := uow.Wallets().GetByUserForUpdate(ctx, ref.ReferrerID)
		if err != nil {
			return err
		}
		if err := w.CreditReferralBonus(bonus); err != nil {
			return err
		}
		if err := uow.Wallets().Update(ctx, w); err != nil {
			return err
		}
		tx, err := ledger.NewTransaction(ref.ReferrerID, ledger.TxReferral, bonus, ledger.TxCompleted, nil)
		if err != nil {
			return err
		}
		if err := uow.Transactions().Create(ctx, tx); err != nil {
			return err
		}
		if err := ref.MarkPaid(); err != nil {
			return err
		}
		if err := uow.Referrals().Update(ctx, ref); err != nil {
			return err
		}
		paid = true
		s.logger.Info("referral bonus paid",
			"referrer_id", ref.ReferrerID, "referred_user_id", ref.ReferredUserID, "bonus", bonus.String())
		return nil
	})
	return paid, err
}

// Package repository defines the data access contracts the services depend
// on. Implementations live under infra/repository; tests substitute
// in-memory fakes.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"github.com/yieldvault/yieldvault/pkg/domain/user"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
)

// PlanRepository provides access to the plan catalog.
type PlanRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error)
	GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error)
	// ListActive returns active plans ordered by ascending minimum deposit.
	ListActive(ctx context.Context) ([]*plan.Plan, error)
	Create(ctx context.Context, p *plan.Plan) error
	Update(ctx context.Context, p *plan.Plan) error
	// Delete removes a plan. Callers must first verify no investments
	// reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// WalletRepository provides access to user wallets.
type WalletRepository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error)
	// GetByUserForUpdate loads the wallet under a row lock; callers must be
	// inside a unit of work.
	GetByUserForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error)
	GetByReferralCode(ctx context.Context, code string) (*wallet.Wallet, error)
	Create(ctx context.Context, w *wallet.Wallet) error
	Update(ctx context.Context, w *wallet.Wallet) error
}

// InvestmentRepository provides access to investments.
type InvestmentRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*investment.Investment, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*investment.Investment, error)
	Create(ctx context.Context, inv *investment.Investment) error
	Update(ctx context.Context, inv *investment.Investment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status investment.Status) ([]*investment.Investment, error)
	// ListActiveEndingAfter returns active investments whose end date is on
	// or after t: the accrual working set.
	ListActiveEndingAfter(ctx context.Context, t time.Time) ([]*investment.Investment, error)
	// ListActiveMatured returns active investments whose end date has
	// passed as of t: the completion working set.
	ListActiveMatured(ctx context.Context, t time.Time) ([]*investment.Investment, error)
	// ListMaturingBetween returns a user's active investments maturing in
	// [from, to], soonest first.
	ListMaturingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*investment.Investment, error)
	// SumPrincipalByUser totals invested principal in minor units across
	// all statuses.
	SumPrincipalByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByPlan(ctx context.Context, planID uuid.UUID) (int64, error)
}

// TransactionRepository provides access to the transaction audit log.
type TransactionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error)
	Create(ctx context.Context, tx *ledger.Transaction) error
	Update(ctx context.Context, tx *ledger.Transaction) error
	// ListByUser returns newest-first transactions with offset pagination.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Transaction, error)
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status ledger.TxStatus) ([]*ledger.Transaction, error)
	// SumCompletedByTypes totals a user's completed transactions of the
	// given types, in minor units.
	SumCompletedByTypes(ctx context.Context, userID uuid.UUID, types ...ledger.TxType) (int64, error)
}

// DepositRepository provides access to deposit claims.
type DepositRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error)
	Create(ctx context.Context, d *ledger.Deposit) error
	Update(ctx context.Context, d *ledger.Deposit) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Deposit, error)
	ListByStatus(ctx context.Context, status ledger.DepositStatus, limit, offset int) ([]*ledger.Deposit, error)
}

// EarningRepository provides access to the accrual idempotency records.
type EarningRepository interface {
	Create(ctx context.Context, e *ledger.DailyEarning) error
	// ExistsForInvestment reports whether an earning row already exists for
	// (investment, date): the accrual idempotency check.
	ExistsForInvestment(ctx context.Context, investmentID uuid.UUID, date time.Time) (bool, error)
	// SumByUserOnDate totals a user's earnings for one date, minor units.
	SumByUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error)
	// SumByUserSince totals a user's earnings on or after from, minor units.
	SumByUserSince(ctx context.Context, userID uuid.UUID, from time.Time) (int64, error)
}

// ReferralRepository provides access to referral relationships.
type ReferralRepository interface {
	Create(ctx context.Context, r *referral.Referral) error
	Update(ctx context.Context, r *referral.Referral) error
	GetByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*referral.Referral, error)
	// ListUnpaidCreatedBefore returns referrals still awaiting payout whose
	// relationship predates cutoff.
	ListUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*referral.Referral, error)
	CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error)
}

// AddressRepository provides access to the platform's receiving addresses.
type AddressRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.DepositAddress, error)
	Create(ctx context.Context, a *ledger.DepositAddress) error
	Update(ctx context.Context, a *ledger.DepositAddress) error
	ListActive(ctx context.Context) ([]*ledger.DepositAddress, error)
}

// UserRepository provides access to platform users.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
}

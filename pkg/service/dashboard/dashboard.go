// Package dashboard assembles the read-only account overview: wallet,
// portfolio, earnings windows, referral stats, and what settles soon.
// Pure reads; total_earnings is kept consistent by the write paths, so
// no reconciliation happens here.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"github.com/yieldvault/yieldvault/pkg/repository"
	walletsvc "github.com/yieldvault/yieldvault/pkg/service/wallet"
)

// Summary is the account overview returned to the web layer.
type Summary struct {
	Wallet               *wallet.Wallet
	ActiveInvestments    []*investment.Investment
	CompletedInvestments []*investment.Investment
	TotalInvested        money.Money
	TodayEarnings        money.Money
	WeeklyEarnings       money.Money
	ReferralCount        int64
	ReferralCode         string
	UpcomingMaturities   []*investment.Investment
	RecentTransactions   []*ledger.Transaction
	GrowthPercent        float64
}

// Service builds dashboard summaries.
type Service struct {
	uow     repository.UnitOfWork
	wallets *walletsvc.Service
	logger  *slog.Logger
}

// New creates a dashboard Service.
func New(uow repository.UnitOfWork, wallets *walletsvc.Service, logger *slog.Logger) *Service {
	return &Service{uow: uow, wallets: wallets, logger: logger}
}

const recentTransactionCount = 5

// Summary builds the overview for userID as of now.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*Summary, error) {
	now = now.UTC()
	w, err := s.wallets.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.uow.Investments().ListByUserAndStatus(ctx, userID, investment.StatusActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.uow.Investments().ListByUserAndStatus(ctx, userID, investment.StatusCompleted)
	if err != nil {
		return nil, err
	}
	investedMinor, err := s.uow.Investments().SumPrincipalByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	todayMinor, err := s.uow.Earnings().SumByUserOnDate(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	weekMinor, err := s.uow.Earnings().SumByUserSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	referrals, err := s.uow.Referrals().CountByReferrer(ctx, userID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.uow.Investments().ListMaturingBetween(ctx, userID, now, now.AddDate(0, 0, 7))
	if err != nil {
		return nil, err
	}
	recent, err := s.uow.Transactions().ListByUser(ctx, userID, recentTransactionCount, 0)
	if err != nil {
		return nil, err
	}

	code := currency.Code(currency.DefaultCurrency)
	sum := &Summary{
		Wallet:               w,
		ActiveInvestments:    active,
		CompletedInvestments: completed,
		TotalInvested:        money.NewFromMinor(investedMinor, code),
		TodayEarnings:        money.NewFromMinor(todayMinor, code),
		WeeklyEarnings:       money.NewFromMinor(weekMinor, code),
		ReferralCount:        referrals,
		ReferralCode:         w.ReferralCode,
		UpcomingMaturities:   upcoming,
		RecentTransactions:   recent,
	}
	if investedMinor > 0 {
		sum.GrowthPercent = float64(w.TotalEarnings.Amount()) / float64(investedMinor) * 100
	}
	return sum, nil
}

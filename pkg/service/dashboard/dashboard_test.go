package dashboard_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/internal/fixtures"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	dashboardsvc "github.com/yieldvault/yieldvault/pkg/service/dashboard"
	walletsvc "github.com/yieldvault/yieldvault/pkg/service/wallet"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func TestSummary(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := dashboardsvc.New(uow, walletsvc.New(uow, slog.Default()), slog.Default())
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	w, err := wallet.New(userID)
	require.NoError(t, err)
	require.NoError(t, w.CreditEarnings(usd(t, 10)))
	uow.SeedWallet(w)

	p, err := plan.New(plan.Standard, money.NewPercent(5, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	uow.SeedPlan(p)

	// one active investment five days in, so it matures within the window
	inv, err := investment.New(userID, p, usd(t, 100), now.AddDate(0, 0, -25))
	require.NoError(t, err)
	uow.SeedInvestment(inv)

	uow.SeedEarning(ledger.NewDailyEarning(userID, inv.ID, usd(t, 5), now))
	uow.SeedEarning(ledger.NewDailyEarning(userID, inv.ID, usd(t, 5), now.AddDate(0, 0, -3)))
	uow.SeedEarning(ledger.NewDailyEarning(userID, inv.ID, usd(t, 5), now.AddDate(0, 0, -20)))

	ref, err := referral.New(userID, uuid.New())
	require.NoError(t, err)
	uow.SeedReferral(ref)

	sum, err := svc.Summary(context.Background(), userID, now)
	require.NoError(t, err)

	assert.Len(t, sum.ActiveInvestments, 1)
	assert.Empty(t, sum.CompletedInvestments)
	assert.Equal(t, int64(10000), sum.TotalInvested.Amount())
	assert.Equal(t, int64(500), sum.TodayEarnings.Amount())
	assert.Equal(t, int64(1000), sum.WeeklyEarnings.Amount(), "the 20-day-old earning is outside the window")
	assert.Equal(t, int64(1), sum.ReferralCount)
	assert.Equal(t, w.ReferralCode, sum.ReferralCode)
	assert.Len(t, sum.UpcomingMaturities, 1)
	assert.InDelta(t, 10.0, sum.GrowthPercent, 0.001, "$10 earned on $100 invested")
}

func TestSummary_FreshUser(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := dashboardsvc.New(uow, walletsvc.New(uow, slog.Default()), slog.Default())

	sum, err := svc.Summary(context.Background(), uuid.New(), time.Now().UTC())
	require.NoError(t, err)

	assert.True(t, sum.Wallet.Balance.IsZero(), "wallet is created lazily")
	assert.Zero(t, sum.GrowthPercent)
	assert.Empty(t, sum.RecentTransactions)
}

package accrual_test

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
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	accrualsvc "github.com/yieldvault/yieldvault/pkg/service/accrual"
	investmentsvc "github.com/yieldvault/yieldvault/pkg/service/investment"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

type harness struct {
	uow     *fixtures.UoW
	svc     *accrualsvc.Service
	plan    *plan.Plan
	userID  uuid.UUID
	wallet  *wallet.Wallet
	started time.Time
}

// setup seeds one user with a wallet and a $100 active investment in a
// 5%/30-day plan started at the given time.
func setup(t *testing.T, start time.Time) (*harness, *investment.Investment) {
	t.Helper()
	uow := fixtures.NewUoW()
	logger := slog.Default()
	invSvc := investmentsvc.New(uow, logger)
	svc := accrualsvc.New(uow, invSvc, logger)

	p, err := plan.New(plan.Standard, money.NewPercent(5, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	uow.SeedPlan(p)

	userID := uuid.New()
	w, err := wallet.New(userID)
	require.NoError(t, err)
	uow.SeedWallet(w)

	inv, err := investment.New(userID, p, usd(t, 100), start)
	require.NoError(t, err)
	uow.SeedInvestment(inv)

	return &harness{uow: uow, svc: svc, plan: p, userID: userID, wallet: w, started: start}, inv
}

func (h *harness) balance(t *testing.T) int64 {
	t.Helper()
	w, err := h.uow.Wallets().GetByUser(context.Background(), h.userID)
	require.NoError(t, err)
	return w.Balance.Amount()
}

func TestRunDailyAccrual_CreditsOncePerDay(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h, _ := setup(t, start)
	date := start.AddDate(0, 0, 1)

	report, err := h.svc.RunDailyAccrual(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	// 5% of $100 = $5.00 credited, one earning row, one return transaction
	assert.Equal(t, int64(500), h.balance(t))
	assert.Equal(t, 1, h.uow.EarningCount())

	txs := h.uow.TransactionsOf(h.userID)
	require.Len(t, txs, 1)
	assert.Equal(t, "return", string(txs[0].Type))
	assert.Equal(t, int64(500), txs[0].Amount.Amount())
}

func TestRunDailyAccrual_RerunIsNoOp(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h, _ := setup(t, start)
	date := start.AddDate(0, 0, 1)

	_, err := h.svc.RunDailyAccrual(context.Background(), date)
	require.NoError(t, err)
	report, err := h.svc.RunDailyAccrual(context.Background(), date)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, int64(500), h.balance(t), "balance unchanged on rerun")
	assert.Equal(t, 1, h.uow.EarningCount(), "no second earning row")
}

func TestRunDailyAccrual_SeparateDaysAccrueSeparately(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h, _ := setup(t, start)

	_, err := h.svc.RunDailyAccrual(context.Background(), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = h.svc.RunDailyAccrual(context.Background(), start.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, int64(1000), h.balance(t))
	assert.Equal(t, 2, h.uow.EarningCount())
}

func TestRunDailyAccrual_CompletesMaturedFirst(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h, inv := setup(t, start)
	// day 31 is past the 30-day end date
	date := start.AddDate(0, 0, 31)

	report, err := h.svc.RunDailyAccrual(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Completed)
	assert.Equal(t, 0, report.Processed, "completed investments do not accrue")

	got, err := h.uow.Investments().Get(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, investment.StatusCompleted, got.Status)
	// total return: $5.00 × 30 days
	assert.Equal(t, int64(15000), got.TotalReturn.Amount())
	assert.Equal(t, int64(15000), h.balance(t))

	// a second run finds nothing to do
	report, err = h.svc.RunDailyAccrual(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Completed)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, int64(15000), h.balance(t))
}

func TestRunDailyAccrual_SkipsNonActive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h, inv := setup(t, start)

	loaded, err := h.uow.Investments().Get(context.Background(), inv.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.Cancel())
	require.NoError(t, h.uow.Investments().Update(context.Background(), loaded))

	report, err := h.svc.RunDailyAccrual(context.Background(), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, int64(0), h.balance(t))
}

func TestRunDailyAccrual_ZeroRateSkips(t *testing.T) {
	uow := fixtures.NewUoW()
	logger := slog.Default()
	svc := accrualsvc.New(uow, investmentsvc.New(uow, logger), logger)

	p, err := plan.New(plan.Basic, money.NewPercent(0, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	uow.SeedPlan(p)

	userID := uuid.New()
	w, err := wallet.New(userID)
	require.NoError(t, err)
	uow.SeedWallet(w)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := investment.New(userID, p, usd(t, 100), start)
	require.NoError(t, err)
	uow.SeedInvestment(inv)

	report, err := svc.RunDailyAccrual(context.Background(), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 0, uow.EarningCount())
}

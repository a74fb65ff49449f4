package investment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/internal/fixtures"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	investmentsvc "github.com/yieldvault/yieldvault/pkg/service/investment"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func setup(t *testing.T, funded float64) (*investmentsvc.Service, *fixtures.UoW, *plan.Plan, uuid.UUID) {
	t.Helper()
	uow := fixtures.NewUoW()
	svc := investmentsvc.New(uow, slog.Default())

	p, err := plan.New(plan.Standard, money.NewPercent(5, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	uow.SeedPlan(p)

	userID := uuid.New()
	w, err := wallet.New(userID)
	require.NoError(t, err)
	if funded > 0 {
		require.NoError(t, w.Credit(usd(t, funded)))
	}
	uow.SeedWallet(w)
	return svc, uow, p, userID
}

func TestCreate_DebitsWalletAndRecordsTransaction(t *testing.T) {
	svc, uow, p, userID := setup(t, 150)

	inv, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	require.NoError(t, err)
	assert.Equal(t, investment.StatusActive, inv.Status)

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), w.Balance.Amount(), "wallet debited $100")

	txs := uow.TransactionsOf(userID)
	require.Len(t, txs, 1)
	assert.Equal(t, "deposit", string(txs[0].Type))
	assert.Equal(t, "completed", string(txs[0].Status))
	require.NotNil(t, txs[0].InvestmentID)
	assert.Equal(t, inv.ID, *txs[0].InvestmentID)
}

func TestCreate_BelowMinimum(t *testing.T) {
	svc, uow, p, userID := setup(t, 150)

	_, err := svc.Create(context.Background(), userID, p.ID, usd(t, 49.99))
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), w.Balance.Amount(), "no debit on failure")
	assert.Empty(t, uow.TransactionsOf(userID), "no transaction on failure")
}

func TestCreate_InsufficientFunds(t *testing.T) {
	svc, uow, p, userID := setup(t, 80)

	_, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	invs, err := uow.Investments().ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, invs, "no investment persisted")
}

func TestCreate_InactivePlan(t *testing.T) {
	svc, uow, p, userID := setup(t, 150)
	p.IsActive = false
	uow.SeedPlan(p)

	_, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	svc, _, p, userID := setup(t, 150)
	inv, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), inv.ID, uuid.New(), false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Cancel(context.Background(), inv.ID, userID, false))
}

func TestCancel_NoRefund(t *testing.T) {
	svc, uow, p, userID := setup(t, 100)
	inv, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), inv.ID, userID, false))

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero(), "principal is not returned on cancel")
}

func TestGet_AdminBypassesOwnership(t *testing.T) {
	svc, _, p, userID := setup(t, 150)
	inv, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), inv.ID, uuid.New(), false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.Get(context.Background(), inv.ID, uuid.New(), true)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)
}

func TestCompleteMatured_PaysFixedReturn(t *testing.T) {
	svc, uow, p, userID := setup(t, 100)
	inv, err := svc.Create(context.Background(), userID, p.ID, usd(t, 100))
	require.NoError(t, err)

	past := inv.EndDate.Add(24 * time.Hour)
	n, err := svc.CompleteMatured(context.Background(), past)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := uow.Investments().Get(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, investment.StatusCompleted, got.Status)
	assert.Equal(t, int64(15000), got.TotalReturn.Amount())

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), w.Balance.Amount())
	assert.Equal(t, int64(15000), w.TotalEarnings.Amount())

	// second pass finds nothing
	n, err = svc.CompleteMatured(context.Background(), past)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

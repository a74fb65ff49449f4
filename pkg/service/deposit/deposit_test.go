package deposit_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/internal/fixtures"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	depositsvc "github.com/yieldvault/yieldvault/pkg/service/deposit"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func btc(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "BTC")
	require.NoError(t, err)
	return m
}

func seedAddress(t *testing.T, uow *fixtures.UoW) *ledger.DepositAddress {
	t.Helper()
	addr, err := ledger.NewDepositAddress("BTC", "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh")
	require.NoError(t, err)
	uow.SeedAddress(addr)
	return addr
}

func TestCreate_PendingDeposit(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())
	addr := seedAddress(t, uow)
	userID := uuid.New()

	d, err := svc.Create(context.Background(), userID, addr.ID, usd(t, 200), btc(t, 0.005), "0xabc123")
	require.NoError(t, err)
	assert.Equal(t, ledger.DepositPending, d.Status)

	// no wallet credit until an admin confirms
	_, err = uow.Wallets().GetByUser(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_InactiveAddress(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())
	addr := seedAddress(t, uow)
	addr.IsActive = false
	uow.SeedAddress(addr)

	_, err := svc.Create(context.Background(), uuid.New(), addr.ID, usd(t, 200), btc(t, 0.005), "0xabc123")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConfirm_CreditsWalletOnce(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())
	addr := seedAddress(t, uow)
	userID := uuid.New()
	adminID := uuid.New()

	d, err := svc.Create(context.Background(), userID, addr.ID, usd(t, 200), btc(t, 0.005), "0xabc123")
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), d.ID, adminID))

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), w.Balance.Amount(), "$200 credited")

	txs := uow.TransactionsOf(userID)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.TxDeposit, txs[0].Type)
	assert.Equal(t, ledger.TxCompleted, txs[0].Status)

	got, err := uow.Deposits().Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.DepositConfirmed, got.Status)
	require.NotNil(t, got.ConfirmedBy)
	assert.Equal(t, adminID, *got.ConfirmedBy)
}

func TestConfirm_SecondTimeLeavesBalanceUnchanged(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())
	addr := seedAddress(t, uow)
	userID := uuid.New()

	d, err := svc.Create(context.Background(), userID, addr.ID, usd(t, 200), btc(t, 0.005), "0xabc123")
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(context.Background(), d.ID, uuid.New()))

	err = svc.Confirm(context.Background(), d.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)

	w, err := uow.Wallets().GetByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), w.Balance.Amount(), "no double credit")
	assert.Len(t, uow.TransactionsOf(userID), 1)
}

func TestReject_NoCredit(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())
	addr := seedAddress(t, uow)
	userID := uuid.New()

	d, err := svc.Create(context.Background(), userID, addr.ID, usd(t, 200), btc(t, 0.005), "0xabc123")
	require.NoError(t, err)
	require.NoError(t, svc.Reject(context.Background(), d.ID))

	_, err = uow.Wallets().GetByUser(context.Background(), userID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Confirm(context.Background(), d.ID, uuid.New())
	assert.Error(t, err, "a rejected deposit cannot be confirmed")
}

func TestAddAddress(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := depositsvc.New(uow, slog.Default())

	addr, err := svc.AddAddress(context.Background(), "ETH", "0x52908400098527886E0F7030069857D2E4169EE7")
	require.NoError(t, err)
	assert.True(t, addr.IsActive)

	active, err := svc.ActiveAddresses(context.Background())
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

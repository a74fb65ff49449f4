package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func TestNewTransaction_Validation(t *testing.T) {
	_, err := ledger.NewTransaction(uuid.New(), ledger.TxType("transfer"), usd(t, 10), ledger.TxPending, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ledger.NewTransaction(uuid.New(), ledger.TxDeposit, money.Zero("USD"), ledger.TxPending, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestTransaction_SettlesOnce(t *testing.T) {
	tx, err := ledger.NewTransaction(uuid.New(), ledger.TxWithdrawal, usd(t, 25), ledger.TxPending, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, tx.ReferenceID)

	require.NoError(t, tx.Complete())
	assert.Equal(t, ledger.TxCompleted, tx.Status)
	assert.ErrorIs(t, tx.Complete(), domain.ErrInvalidTransition)
	assert.ErrorIs(t, tx.Reject(), domain.ErrInvalidTransition)
}

func TestTransaction_RejectOnce(t *testing.T) {
	tx, err := ledger.NewTransaction(uuid.New(), ledger.TxWithdrawal, usd(t, 25), ledger.TxPending, nil)
	require.NoError(t, err)

	require.NoError(t, tx.Reject())
	assert.Equal(t, ledger.TxRejected, tx.Status)
	assert.ErrorIs(t, tx.Complete(), domain.ErrInvalidTransition)
}

func TestDeposit_ConfirmIdempotent(t *testing.T) {
	crypto, err := money.New(0.005, "BTC")
	require.NoError(t, err)
	d, err := ledger.NewDeposit(uuid.New(), uuid.New(), usd(t, 200), crypto, "0xabc123def456")
	require.NoError(t, err)
	assert.Equal(t, ledger.DepositPending, d.Status)

	admin := uuid.New()
	now := time.Now().UTC()
	require.NoError(t, d.Confirm(admin, now))
	assert.Equal(t, ledger.DepositConfirmed, d.Status)
	require.NotNil(t, d.ConfirmedBy)
	assert.Equal(t, admin, *d.ConfirmedBy)

	err = d.Confirm(uuid.New(), now.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrAlreadyConfirmed)
	assert.Equal(t, admin, *d.ConfirmedBy, "first confirmer stays on record")
}

func TestDeposit_RejectedCannotConfirm(t *testing.T) {
	crypto, _ := money.New(0.005, "BTC")
	d, err := ledger.NewDeposit(uuid.New(), uuid.New(), usd(t, 200), crypto, "0xabc123def456")
	require.NoError(t, err)

	require.NoError(t, d.Reject())
	assert.ErrorIs(t, d.Confirm(uuid.New(), time.Now()), domain.ErrInvalidTransition)
}

func TestDeposit_ConfirmedCannotReject(t *testing.T) {
	crypto, _ := money.New(0.005, "BTC")
	d, err := ledger.NewDeposit(uuid.New(), uuid.New(), usd(t, 200), crypto, "0xabc123def456")
	require.NoError(t, err)

	require.NoError(t, d.Confirm(uuid.New(), time.Now()))
	assert.ErrorIs(t, d.Reject(), domain.ErrInvalidTransition)
}

func TestMidnight(t *testing.T) {
	ts := time.Date(2026, 8, 30, 23, 59, 59, 123, time.FixedZone("UTC+3", 3*3600))
	got := ledger.Midnight(ts)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), got)
}

func TestNewDepositAddress_Validation(t *testing.T) {
	a, err := ledger.NewDepositAddress("BTC", "bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh")
	require.NoError(t, err)
	assert.True(t, a.IsActive)

	_, err = ledger.NewDepositAddress("DOGE", "addr")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = ledger.NewDepositAddress("BTC", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

package referral_test

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
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	referralsvc "github.com/yieldvault/yieldvault/pkg/service/referral"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func newService(uow *fixtures.UoW) *referralsvc.Service {
	return referralsvc.New(uow, referral.DefaultBonusPercent, referral.MaturityDays, slog.Default())
}

func TestRegister_CreatesUserAndWallet(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)

	u, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2secret", "")
	require.NoError(t, err)

	w, err := uow.Wallets().GetByUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
	assert.NotEmpty(t, w.ReferralCode)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)

	_, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2secret", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other@example.com", "hunter2secret", "")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRegister_WithReferralCode(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)

	referrer, err := svc.Register(context.Background(), "alice", "alice@example.com", "hunter2secret", "")
	require.NoError(t, err)
	rw, err := uow.Wallets().GetByUser(context.Background(), referrer.ID)
	require.NoError(t, err)

	referred, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2secret", rw.ReferralCode)
	require.NoError(t, err)

	ref, err := uow.Referrals().GetByReferredUser(context.Background(), referred.ID)
	require.NoError(t, err)
	assert.Equal(t, referrer.ID, ref.ReferrerID)
	assert.False(t, ref.BonusPaid)
}

func TestRegister_UnknownCodeIgnored(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)

	u, err := svc.Register(context.Background(), "bob", "bob@example.com", "hunter2secret", "REFNOSUCHCODE")
	require.NoError(t, err, "registration succeeds despite bad code")

	_, err = uow.Referrals().GetByReferredUser(context.Background(), u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// seedMatured wires a referrer wallet, a referred user with invested
// principal, and a referral created the given number of days ago.
func seedMatured(t *testing.T, uow *fixtures.UoW, ageDays int, principal float64) (referrerID uuid.UUID) {
	t.Helper()
	referrerID = uuid.New()
	rw, err := wallet.New(referrerID)
	require.NoError(t, err)
	uow.SeedWallet(rw)

	referredID := uuid.New()
	if principal > 0 {
		p, err := plan.New(plan.Premium, money.NewPercent(8, 0), usd(t, 50), 30, "")
		require.NoError(t, err)
		uow.SeedPlan(p)
		inv, err := investment.New(referredID, p, usd(t, principal), time.Now().UTC())
		require.NoError(t, err)
		uow.SeedInvestment(inv)
	}

	ref, err := referral.New(referrerID, referredID)
	require.NoError(t, err)
	ref.CreatedAt = time.Now().UTC().AddDate(0, 0, -ageDays)
	uow.SeedReferral(ref)
	return referrerID
}

func TestProcessMaturedReferrals_PaysTwoPercentOnce(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)
	referrerID := seedMatured(t, uow, 91, 300)

	report, err := svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Paid)

	w, err := uow.Wallets().GetByUser(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), w.Balance.Amount(), "2% of $300 is $6.00")
	assert.Equal(t, int64(600), w.TotalReferralBonus.Amount())

	txs := uow.TransactionsOf(referrerID)
	require.Len(t, txs, 1)
	assert.Equal(t, "referral", string(txs[0].Type))

	// second run leaves the balance unchanged
	report, err = svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Paid)

	w, err = uow.Wallets().GetByUser(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), w.Balance.Amount())
	assert.Len(t, uow.TransactionsOf(referrerID), 1)
}

func TestProcessMaturedReferrals_TruncatesBonus(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)
	referrerID := seedMatured(t, uow, 120, 99.99)

	_, err := svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)

	w, err := uow.Wallets().GetByUser(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(199), w.Balance.Amount(), "2% of $99.99 truncates to $1.99")
}

func TestProcessMaturedReferrals_NotYetMatured(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)
	referrerID := seedMatured(t, uow, 89, 300)

	report, err := svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Paid)

	w, err := uow.Wallets().GetByUser(context.Background(), referrerID)
	require.NoError(t, err)
	assert.True(t, w.Balance.IsZero())
}

func TestProcessMaturedReferrals_ZeroPrincipalRetriedLater(t *testing.T) {
	uow := fixtures.NewUoW()
	svc := newService(uow)
	referrerID := seedMatured(t, uow, 100, 0)

	report, err := svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Zero)

	ref, err := uow.Referrals().ListUnpaidCreatedBefore(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, ref, 1, "stays unpaid for the next run")

	// the referred user invests later; the next run pays out
	p, err := plan.New(plan.Basic, money.NewPercent(3, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	uow.SeedPlan(p)
	inv, err := investment.New(ref[0].ReferredUserID, p, usd(t, 100), time.Now().UTC())
	require.NoError(t, err)
	uow.SeedInvestment(inv)

	report, err = svc.ProcessMaturedReferrals(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Paid)

	w, err := uow.Wallets().GetByUser(context.Background(), referrerID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), w.Balance.Amount())
}

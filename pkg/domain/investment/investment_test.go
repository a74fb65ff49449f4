package investment_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func standardPlan(t *testing.T) *plan.Plan {
	t.Helper()
	p, err := plan.New(plan.Standard, money.NewPercent(5, 0), usd(t, 50), 30, "")
	require.NoError(t, err)
	return p
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to investment.Status
		ok       bool
	}{
		{investment.StatusPending, investment.StatusActive, true},
		{investment.StatusPending, investment.StatusCancelled, true},
		{investment.StatusActive, investment.StatusCompleted, true},
		{investment.StatusActive, investment.StatusCancelled, true},
		{investment.StatusPending, investment.StatusCompleted, false},
		{investment.StatusCompleted, investment.StatusActive, false},
		{investment.StatusCancelled, investment.StatusActive, false},
		{investment.StatusCompleted, investment.StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s → %s", tt.from, tt.to)
	}
	assert.True(t, investment.StatusCompleted.Terminal())
	assert.True(t, investment.StatusCancelled.Terminal())
	assert.False(t, investment.StatusActive.Terminal())
}

func TestNew_ActivatesImmediately(t *testing.T) {
	p := standardPlan(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	inv, err := investment.New(uuid.New(), p, usd(t, 100), start)
	require.NoError(t, err)
	assert.Equal(t, investment.StatusActive, inv.Status)
	assert.True(t, inv.IsConfirmed)
	assert.Equal(t, start.AddDate(0, 0, 30), inv.EndDate)
	assert.True(t, inv.TotalReturn.IsZero())
}

func TestNew_BelowMinimum(t *testing.T) {
	p := standardPlan(t)
	_, err := investment.New(uuid.New(), p, usd(t, 49.99), time.Now())
	assert.ErrorIs(t, err, domain.ErrBelowMinimum)
}

func TestConfirm_Idempotent(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)

	inv.Status = investment.StatusPending
	inv.IsConfirmed = false
	inv.Confirm()
	assert.Equal(t, investment.StatusActive, inv.Status)
	assert.True(t, inv.IsConfirmed)

	inv.Confirm() // no-op
	assert.Equal(t, investment.StatusActive, inv.Status)
}

func TestDailyReturn(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)

	daily, err := inv.DailyReturn(p)
	require.NoError(t, err)
	assert.Equal(t, int64(500), daily.Amount(), "5%% of $100 is $5.00")
}

func TestDailyReturn_ZeroUnlessActive(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)
	require.NoError(t, inv.Cancel())

	daily, err := inv.DailyReturn(p)
	require.NoError(t, err)
	assert.True(t, daily.IsZero())
}

func TestComplete_FixesTotalReturnOnce(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)

	total, err := inv.Complete(p)
	require.NoError(t, err)
	// $5.00 daily × 30 days
	assert.Equal(t, int64(15000), total.Amount())
	assert.Equal(t, investment.StatusCompleted, inv.Status)

	_, err = inv.Complete(p)
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)
	assert.Equal(t, int64(15000), inv.TotalReturn.Amount())
}

func TestComplete_OnlyFromActive(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)
	require.NoError(t, inv.Cancel())

	_, err = inv.Complete(p)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_NoRefundPath(t *testing.T) {
	p := standardPlan(t)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), time.Now())
	require.NoError(t, err)

	require.NoError(t, inv.Cancel())
	assert.Equal(t, investment.StatusCancelled, inv.Status)
	assert.ErrorIs(t, inv.Cancel(), domain.ErrInvalidTransition)
}

func TestMaturedAndProgress(t *testing.T) {
	p := standardPlan(t)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inv, err := investment.New(uuid.New(), p, usd(t, 100), start)
	require.NoError(t, err)

	assert.False(t, inv.Matured(start.AddDate(0, 0, 29)))
	assert.True(t, inv.Matured(start.AddDate(0, 0, 31)))

	mid := start.AddDate(0, 0, 15)
	assert.Equal(t, 15, inv.DaysElapsed(mid))
	assert.Equal(t, 15, inv.DaysRemaining(mid))
	assert.InDelta(t, 50.0, inv.ProgressPercent(p, mid), 0.01)

	val, err := inv.CurrentValue(p, mid)
	require.NoError(t, err)
	// principal + 15 × $5.00
	assert.Equal(t, int64(17500), val.Amount())
}

package plan_test

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
	plansvc "github.com/yieldvault/yieldvault/pkg/service/plan"
)

func seededService(t *testing.T) (*plansvc.Service, *fixtures.UoW) {
	t.Helper()
	uow := fixtures.NewUoW()
	svc := plansvc.New(uow, slog.Default())
	require.NoError(t, svc.SeedDefaults(context.Background()))
	return svc, uow
}

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	svc, _ := seededService(t)
	require.NoError(t, svc.SeedDefaults(context.Background()))

	plans, err := svc.ActivePlans(context.Background())
	require.NoError(t, err)
	assert.Len(t, plans, 3)
}

func TestActivePlans_AscendingMinDeposit(t *testing.T) {
	svc, _ := seededService(t)
	plans, err := svc.ActivePlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, plan.Basic, plans[0].Name)
	assert.Equal(t, plan.Standard, plans[1].Name)
	assert.Equal(t, plan.Premium, plans[2].Name)
}

func TestSelectForAmount_HighestQualifyingThreshold(t *testing.T) {
	svc, _ := seededService(t)

	// $120 qualifies for basic ($50) and standard ($100); standard wins
	p, err := svc.SelectForAmount(context.Background(), usd(t, 120))
	require.NoError(t, err)
	assert.Equal(t, plan.Standard, p.Name)

	p, err = svc.SelectForAmount(context.Background(), usd(t, 250))
	require.NoError(t, err)
	assert.Equal(t, plan.Premium, p.Name)

	p, err = svc.SelectForAmount(context.Background(), usd(t, 50))
	require.NoError(t, err)
	assert.Equal(t, plan.Basic, p.Name)
}

func TestSelectForAmount_NothingQualifies(t *testing.T) {
	svc, _ := seededService(t)
	_, err := svc.SelectForAmount(context.Background(), usd(t, 49.99))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ForbiddenWhileReferenced(t *testing.T) {
	svc, uow := seededService(t)
	plans, err := svc.ActivePlans(context.Background())
	require.NoError(t, err)
	basic := plans[0]

	inv, err := investment.New(uuid.New(), basic, usd(t, 60), time.Now().UTC())
	require.NoError(t, err)
	uow.SeedInvestment(inv)

	err = svc.Delete(context.Background(), basic.ID)
	assert.ErrorIs(t, err, domain.ErrPlanReferenced)

	// unreferenced plans delete fine
	require.NoError(t, svc.Delete(context.Background(), plans[2].ID))
}

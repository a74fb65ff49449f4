package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
)

func usd(t *testing.T, v float64) money.Money {
	t.Helper()
	m, err := money.New(v, "USD")
	require.NoError(t, err)
	return m
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		planName plan.Name
		rate     money.Percent
		min      float64
		days     int
		wantErr  error
	}{
		{"valid", plan.Basic, money.NewPercent(3, 0), 50, 30, nil},
		{"unknown name", plan.Name("gold"), money.NewPercent(3, 0), 50, 30, plan.ErrInvalidName},
		{"zero min deposit", plan.Basic, money.NewPercent(3, 0), 0, 30, plan.ErrInvalidMinDeposit},
		{"negative rate", plan.Basic, money.PercentFromFloat(-1), 50, 30, plan.ErrInvalidRate},
		{"zero duration", plan.Basic, money.NewPercent(3, 0), 50, 0, plan.ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, _ := money.New(tt.min, "USD")
			_, err := plan.New(tt.planName, tt.rate, min, tt.days, "")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAccepts(t *testing.T) {
	p, err := plan.New(plan.Standard, money.NewPercent(5, 0), usd(t, 100), 30, "")
	require.NoError(t, err)

	assert.True(t, p.Accepts(usd(t, 100)))
	assert.True(t, p.Accepts(usd(t, 250)))
	assert.False(t, p.Accepts(usd(t, 99.99)))
}

func TestDefaults_SeedCatalog(t *testing.T) {
	plans := plan.Defaults()
	require.Len(t, plans, 3)

	assert.Equal(t, plan.Basic, plans[0].Name)
	assert.Equal(t, int64(5000), plans[0].MinDeposit.Amount())
	assert.Equal(t, 3.0, plans[0].DailyReturn.Float())

	assert.Equal(t, plan.Standard, plans[1].Name)
	assert.Equal(t, int64(10000), plans[1].MinDeposit.Amount())
	assert.Equal(t, 5.0, plans[1].DailyReturn.Float())

	assert.Equal(t, plan.Premium, plans[2].Name)
	assert.Equal(t, int64(25000), plans[2].MinDeposit.Amount())
	assert.Equal(t, 8.0, plans[2].DailyReturn.Float())

	for _, p := range plans {
		assert.Equal(t, 30, p.DurationDays)
		assert.True(t, p.IsActive)
	}
}

func TestNameDisplay(t *testing.T) {
	assert.Equal(t, "Basic Plan", plan.Basic.Display())
	assert.Equal(t, "Premium Plan", plan.Premium.Display())
	assert.True(t, plan.Standard.Valid())
	assert.False(t, plan.Name("vip").Valid())
}

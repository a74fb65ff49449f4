package scheduler

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadInput(t *testing.T) {
	_, err := New(nil, nil, "25:99", time.Hour, slog.Default())
	assert.Error(t, err)

	_, err = New(nil, nil, "00:05", 0, slog.Default())
	assert.Error(t, err)

	s, err := New(nil, nil, "00:05", time.Hour, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, s.accrualHour)
	assert.Equal(t, 5, s.accrualMinute)
}

func TestUntilNextAccrual(t *testing.T) {
	s, err := New(nil, nil, "00:05", time.Hour, slog.Default())
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "before today's slot",
			now:  time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			want: 5 * time.Minute,
		},
		{
			name: "exactly at the slot waits a full day",
			now:  time.Date(2026, 3, 14, 0, 5, 0, 0, time.UTC),
			want: 24 * time.Hour,
		},
		{
			name: "after today's slot",
			now:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
			want: 12*time.Hour + 5*time.Minute,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.untilNextAccrual(tt.now)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, got)
		})
	}
}

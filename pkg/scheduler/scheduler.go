// Package scheduler drives the two batch entry points on a fixed
// cadence: daily accrual at a configured UTC wall-clock time and referral
// processing on a simple interval. One scheduler instance keeps a single
// active run per job; an overrunning job delays the next tick rather
// than overlapping it.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yieldvault/yieldvault/pkg/service/accrual"
	"github.com/yieldvault/yieldvault/pkg/service/referral"
)

// Scheduler runs the recurring ledger jobs.
type Scheduler struct {
	accrual   *accrual.Service
	referrals *referral.Service

	accrualHour   int
	accrualMinute int
	referralEvery time.Duration

	logger *slog.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Scheduler. accrualAt is a UTC wall-clock time in "HH:MM"
// form; referralEvery is the gap between referral processing runs.
func New(accrualSvc *accrual.Service, referralSvc *referral.Service, accrualAt string, referralEvery time.Duration, logger *slog.Logger) (*Scheduler, error) {
	t, err := time.Parse("15:04", accrualAt)
	if err != nil {
		return nil, fmt.Errorf("parse accrual time %q: %w", accrualAt, err)
	}
	if referralEvery <= 0 {
		return nil, fmt.Errorf("referral interval must be positive, got %s", referralEvery)
	}
	return &Scheduler{
		accrual:       accrualSvc,
		referrals:     referralSvc,
		accrualHour:   t.Hour(),
		accrualMinute: t.Minute(),
		referralEvery: referralEvery,
		logger:        logger,
	}, nil
}

// Start launches both job loops. They run until Stop or ctx cancellation.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(2)
	go s.accrualLoop(ctx)
	go s.referralLoop(ctx)
	s.logger.Info("scheduler started",
		"accrual_at", fmt.Sprintf("%02d:%02d UTC", s.accrualHour, s.accrualMinute),
		"referral_every", s.referralEvery)
}

// Stop cancels the job loops and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) accrualLoop(ctx context.Context) {
	defer s.wg.Done()
	for {
		wait := s.untilNextAccrual(time.Now().UTC())
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case fired := <-timer.C:
			if _, err := s.accrual.RunDailyAccrual(ctx, fired.UTC()); err != nil {
				s.logger.Error("daily accrual run failed", "error", err)
			}
		}
	}
}

// untilNextAccrual is the wait from now to the next configured wall-clock
// slot, always strictly positive so a run never refires in the same slot.
func (s *Scheduler) untilNextAccrual(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.accrualHour, s.accrualMinute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *Scheduler) referralLoop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.referralEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case fired := <-ticker.C:
			if _, err := s.referrals.ProcessMaturedReferrals(ctx, fired.UTC()); err != nil {
				s.logger.Error("referral processing run failed", "error", err)
			}
		}
	}
}

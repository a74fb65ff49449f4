// Package plan provides the plan catalog operations: listing active plans,
// matching an amount to its best plan, and seeding the default tiers.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/repository"
)

// Service provides plan catalog operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a plan Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ActivePlans lists active plans ordered by ascending minimum deposit.
func (s *Service) ActivePlans(ctx context.Context) ([]*plan.Plan, error) {
	return s.uow.Plans().ListActive(ctx)
}

// Get returns a plan by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	return s.uow.Plans().Get(ctx, id)
}

// SelectForAmount picks, among active plans whose minimum deposit the
// amount covers, the one with the largest minimum deposit: the highest
// qualifying threshold wins, not the first match. Returns ErrNotFound
// when no plan qualifies.
func (s *Service) SelectForAmount(ctx context.Context, amount money.Money) (*plan.Plan, error) {
	plans, err := s.uow.Plans().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	var best *plan.Plan
	for _, p := range plans {
		// plans arrive in ascending min_deposit order, so the last
		// qualifying plan has the highest threshold
		if p.Accepts(amount) {
			best = p
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no plan accepts %s: %w", amount, domain.ErrNotFound)
	}
	return best, nil
}

// Create registers a new plan.
func (s *Service) Create(ctx context.Context, name plan.Name, dailyReturn money.Percent, minDeposit money.Money, durationDays int, description string) (*plan.Plan, error) {
	p, err := plan.New(name, dailyReturn, minDeposit, durationDays, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	if err := s.uow.Plans().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate hides a plan from the catalog without touching existing
// investments.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		p, err := uow.Plans().Get(ctx, id)
		if err != nil {
			return err
		}
		p.IsActive = false
		return uow.Plans().Update(ctx, p)
	})
}

// Delete removes a plan. Deletion is forbidden while any investment
// references the plan.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		count, err := uow.Investments().CountByPlan(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrPlanReferenced
		}
		return uow.Plans().Delete(ctx, id)
	})
}

// SeedDefaults creates the default catalog tiers that do not exist yet.
// Safe to run on every startup.
func (s *Service) SeedDefaults(ctx context.Context) error {
	for _, p := range plan.Defaults() {
		_, err := s.uow.Plans().GetByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := s.uow.Plans().Create(ctx, p); err != nil {
			return err
		}
		s.logger.Info("seeded default plan", "name", p.Name, "daily_return", p.DailyReturn.String(), "min_deposit", p.MinDeposit.String())
	}
	return nil
}

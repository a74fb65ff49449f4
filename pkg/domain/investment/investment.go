// Package investment defines the investment aggregate and its lifecycle
// state machine:
//
//	pending → active → completed
//	pending → cancelled
//	active  → cancelled
//
// completed and cancelled are terminal. Cancelling performs no balance
// adjustment; the refund policy is intentionally undefined at this layer.
package investment

import (
	"time"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
)

// Status is the lifecycle state of an investment.
type Status string

// Lifecycle states.
const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending: {StatusActive, StatusCancelled},
	StatusActive:  {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from s to next is permitted.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Investment is a principal amount placed into a plan for a fixed term.
//
// Invariants:
//   - Principal ≥ the plan's minimum deposit.
//   - EndDate = StartDate + plan duration, computed once at creation and
//     immutable after.
//   - TotalReturn is computed exactly once, at completion.
type Investment struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	PlanID              uuid.UUID
	Principal           money.Money
	StartDate           time.Time
	EndDate             time.Time
	Status              Status
	TotalReturn         money.Money
	ReferralBonusEarned money.Money
	IsConfirmed         bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// New places principal into p starting at start. The direct-invest path
// activates immediately; there is no separate confirmation step.
func New(userID uuid.UUID, p *plan.Plan, principal money.Money, start time.Time) (*Investment, error) {
	if !p.Accepts(principal) {
		return nil, domain.ErrBelowMinimum
	}
	start = start.UTC()
	zero := money.Zero(principal.Currency())
	return &Investment{
		ID:                  uuid.New(),
		UserID:              userID,
		PlanID:              p.ID,
		Principal:           principal,
		StartDate:           start,
		EndDate:             start.AddDate(0, 0, p.DurationDays),
		Status:              StatusActive,
		TotalReturn:         zero,
		ReferralBonusEarned: zero,
		IsConfirmed:         true,
		CreatedAt:           start,
	}, nil
}

// Confirm marks the investment confirmed and activates it if still pending.
// Calling it on an already confirmed investment is a no-op.
func (i *Investment) Confirm() {
	if i.IsConfirmed {
		return
	}
	i.IsConfirmed = true
	if i.Status == StatusPending {
		i.Status = StatusActive
	}
	i.UpdatedAt = time.Now().UTC()
}

// DailyReturn computes one day's return: principal × daily rate, rounded
// half-up to the currency's scale. Returns zero unless the investment is
// active.
func (i *Investment) DailyReturn(p *plan.Plan) (money.Money, error) {
	if i.Status != StatusActive {
		return money.Zero(i.Principal.Currency()), nil
	}
	return i.Principal.Percent(p.DailyReturn, money.RoundHalfUp)
}

// TermDays is the number of whole days between start and end date.
func (i *Investment) TermDays() int {
	return int(i.EndDate.Sub(i.StartDate).Hours() / 24)
}

// totalReturn is the payout at maturity: the rounded daily return times the
// term length. Any sub-unit remainder truncates toward zero, which differs
// deliberately from the half-up rounding of single-day amounts.
func (i *Investment) totalReturn(p *plan.Plan) (money.Money, error) {
	daily, err := i.Principal.Percent(p.DailyReturn, money.RoundHalfUp)
	if err != nil {
		return money.Money{}, err
	}
	return daily.MulInt(int64(i.TermDays()))
}

// Complete transitions active → completed and fixes TotalReturn. Once
// TotalReturn is nonzero recomputation is forbidden; a second call reports
// ErrAlreadyProcessed.
func (i *Investment) Complete(p *plan.Plan) (money.Money, error) {
	if i.Status == StatusCompleted && !i.TotalReturn.IsZero() {
		return money.Money{}, domain.ErrAlreadyProcessed
	}
	if !i.Status.CanTransition(StatusCompleted) {
		return money.Money{}, domain.ErrInvalidTransition
	}
	total, err := i.totalReturn(p)
	if err != nil {
		return money.Money{}, err
	}
	i.Status = StatusCompleted
	i.TotalReturn = total
	i.UpdatedAt = time.Now().UTC()
	return total, nil
}

// Cancel transitions pending or active → cancelled. No balance adjustment
// happens here.
func (i *Investment) Cancel() error {
	if !i.Status.CanTransition(StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	i.Status = StatusCancelled
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Matured reports whether the term has elapsed as of now.
func (i *Investment) Matured(now time.Time) bool {
	return now.After(i.EndDate)
}

// DaysElapsed is the count of whole days since the start date, never negative.
func (i *Investment) DaysElapsed(now time.Time) int {
	d := int(now.Sub(i.StartDate).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// DaysRemaining is the count of whole days until maturity for an active
// investment, never negative.
func (i *Investment) DaysRemaining(now time.Time) int {
	if i.Status != StatusActive {
		return 0
	}
	d := int(i.EndDate.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// CurrentValue is the principal plus returns earned so far: accrued daily
// returns while active, the fixed total after completion, and the bare
// principal otherwise.
func (i *Investment) CurrentValue(p *plan.Plan, now time.Time) (money.Money, error) {
	switch i.Status {
	case StatusActive:
		daily, err := i.DailyReturn(p)
		if err != nil {
			return money.Money{}, err
		}
		earned, err := daily.MulInt(int64(i.DaysElapsed(now)))
		if err != nil {
			return money.Money{}, err
		}
		return i.Principal.Add(earned)
	case StatusCompleted:
		return i.Principal.Add(i.TotalReturn)
	default:
		return i.Principal, nil
	}
}

// ProgressPercent is how far through its term the investment is, 0–100.
func (i *Investment) ProgressPercent(p *plan.Plan, now time.Time) float64 {
	if i.Status == StatusCompleted {
		return 100
	}
	if i.Status != StatusActive || p.DurationDays <= 0 {
		return 0
	}
	pct := float64(i.DaysElapsed(now)) / float64(p.DurationDays) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

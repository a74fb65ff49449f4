// Package domain defines the shared error taxonomy for ledger operations.
// Services return these sentinels (usually wrapped); the web layer maps them
// to HTTP problem responses.
package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced plan, wallet, investment,
	// deposit or user does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when input fails validation. No mutation is
	// performed.
	ErrValidation = errors.New("validation error")
	// ErrInvalidAmount is returned when a credit or debit amount is not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is returned when a debit exceeds the wallet
	// balance. The balance is left unchanged.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBelowMinimum is returned when an investment amount is below the
	// plan's minimum deposit.
	ErrBelowMinimum = errors.New("amount below plan minimum deposit")
	// ErrAlreadyConfirmed is returned when a deposit confirmation is
	// retried after the deposit was already confirmed.
	ErrAlreadyConfirmed = errors.New("deposit already confirmed")
	// ErrAlreadyProcessed marks an idempotency skip. It reports a no-op,
	// not a failure.
	ErrAlreadyProcessed = errors.New("already processed")
	// ErrInvalidTransition is returned when a state machine transition is
	// not permitted from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyExists is returned when a unique constraint would be
	// violated, e.g. registering a taken username.
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrUnauthorized is returned when credentials are missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrPlanReferenced is returned when deleting a plan that active
	// investments still reference.
	ErrPlanReferenced = errors.New("plan is referenced by investments")
)

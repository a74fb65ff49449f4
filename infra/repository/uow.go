package repository

import (
	"context"

	"github.com/yieldvault/yieldvault/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Every repository handed out by a UoW inside Do is bound to
// the same gorm transaction, which is what makes wallet mutations and
// their paired transaction records atomic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs fn inside a database transaction, providing a UoW whose
// repositories share that transaction. An error from fn rolls back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the base connection
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Plans returns the plan repository bound to the current session.
func (u *UoW) Plans() repository.PlanRepository { return &planRepository{db: u.session()} }

// Wallets returns the wallet repository bound to the current session.
func (u *UoW) Wallets() repository.WalletRepository { return &walletRepository{db: u.session()} }

// Investments returns the investment repository bound to the current session.
func (u *UoW) Investments() repository.InvestmentRepository {
	return &investmentRepository{db: u.session()}
}

// Transactions returns the transaction repository bound to the current session.
func (u *UoW) Transactions() repository.TransactionRepository {
	return &transactionRepository{db: u.session()}
}

// Deposits returns the deposit repository bound to the current session.
func (u *UoW) Deposits() repository.DepositRepository { return &depositRepository{db: u.session()} }

// Earnings returns the earning repository bound to the current session.
func (u *UoW) Earnings() repository.EarningRepository { return &earningRepository{db: u.session()} }

// Referrals returns the referral repository bound to the current session.
func (u *UoW) Referrals() repository.ReferralRepository {
	return &referralRepository{db: u.session()}
}

// Addresses returns the deposit address repository bound to the current session.
func (u *UoW) Addresses() repository.AddressRepository { return &addressRepository{db: u.session()} }

// Users returns the user repository bound to the current session.
func (u *UoW) Users() repository.UserRepository { return &userRepository{db: u.session()} }

// Package repository contains the GORM persistence models and the
// repository implementations behind the pkg/repository contracts.
// Monetary columns store minor units as int64 beside their currency code;
// rates store hundredths of a percent.
package repository

import (
	"time"

	"github.com/google/uuid"
)

// Plan is the plans table row.
type Plan struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:20;uniqueIndex;not null"`
	DailyReturn  int64     `gorm:"not null"`
	MinDeposit   int64     `gorm:"not null"`
	Currency     string    `gorm:"size:5;not null;default:'USD'"`
	DurationDays int       `gorm:"not null;default:30"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	Description  string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Plan model.
func (Plan) TableName() string { return "plans" }

// Wallet is the wallets table row.
type Wallet struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Balance            int64     `gorm:"not null;default:0"`
	TotalEarnings      int64     `gorm:"not null;default:0"`
	TotalReferralBonus int64     `gorm:"not null;default:0"`
	Currency           string    `gorm:"size:5;not null;default:'USD'"`
	ReferralCode       string    `gorm:"size:20;uniqueIndex;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for the Wallet model.
func (Wallet) TableName() string { return "wallets" }

// Investment is the investments table row.
type Investment struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;index;not null"`
	PlanID              uuid.UUID `gorm:"type:uuid;index;not null"`
	Principal           int64     `gorm:"not null"`
	Currency            string    `gorm:"size:5;not null;default:'USD'"`
	StartDate           time.Time `gorm:"not null"`
	EndDate             time.Time `gorm:"index;not null"`
	Status              string    `gorm:"size:10;index;not null;default:'pending'"`
	TotalReturn         int64     `gorm:"not null;default:0"`
	ReferralBonusEarned int64     `gorm:"not null;default:0"`
	IsConfirmed         bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the Investment model.
func (Investment) TableName() string { return "investments" }

// Transaction is the transactions table row. Rows are append-only apart
// from the single status settlement.
type Transaction struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type         string     `gorm:"size:10;index;not null"`
	Amount       int64      `gorm:"not null"`
	Currency     string     `gorm:"size:5;not null;default:'USD'"`
	Status       string     `gorm:"size:10;index;not null;default:'pending'"`
	InvestmentID *uuid.UUID `gorm:"type:uuid;index"`
	ReferenceID  uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Deposit is the deposits table row.
type Deposit struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	AddressID      uuid.UUID `gorm:"type:uuid;not null"`
	Amount         int64     `gorm:"not null"`
	Currency       string    `gorm:"size:5;not null;default:'USD'"`
	AmountCrypto   int64     `gorm:"not null;default:0"`
	CryptoCurrency string    `gorm:"size:5;not null"`
	TxHash         string    `gorm:"size:255"`
	Status         string    `gorm:"size:20;index;not null;default:'pending'"`
	ConfirmedBy    *uuid.UUID `gorm:"type:uuid"`
	ConfirmedAt    *time.Time
	ReferenceID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Deposit model.
func (Deposit) TableName() string { return "deposits" }

// DailyEarning is the daily_earnings table row. The composite unique index
// on (investment_id, date) is the accrual idempotency constraint.
type DailyEarning struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	InvestmentID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_earnings_investment_date;not null"`
	Amount       int64     `gorm:"not null"`
	Currency     string    `gorm:"size:5;not null;default:'USD'"`
	Date         time.Time `gorm:"type:date;uniqueIndex:idx_earnings_investment_date;index;not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the DailyEarning model.
func (DailyEarning) TableName() string { return "daily_earnings" }

// Referral is the referrals table row.
type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ReferredUserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BonusPaid      bool      `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Referral model.
func (Referral) TableName() string { return "referrals" }

// DepositAddress is the deposit_addresses table row.
type DepositAddress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Network   string    `gorm:"size:5;not null"`
	Address   string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the DepositAddress model.
func (DepositAddress) TableName() string { return "deposit_addresses" }

// User is the users table row.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:50;uniqueIndex;not null"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string { return "users" }

// AllModels lists every persistence model for migration.
func AllModels() []any {
	return []any{
		&User{}, &Wallet{}, &Plan{}, &Investment{}, &Transaction{},
		&Deposit{}, &DailyEarning{}, &Referral{}, &DepositAddress{},
	}
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var m Transaction
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return transactionToDomain(&m), nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	return translateError(r.db.WithContext(ctx).Create(transactionToModel(tx)).Error)
}

func (r *transactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	return translateError(r.db.WithContext(ctx).Save(transactionToModel(tx)).Error)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Transaction, error) {
	var ms []Transaction
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, translateError(err)
	}
	return transactionsToDomain(ms), nil
}

func (r *transactionRepository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status ledger.TxStatus) ([]*ledger.Transaction, error) {
	var ms []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Order("created_at desc").
		Find(&ms).Error
	if err != nil {
		return nil, translateError(err)
	}
	return transactionsToDomain(ms), nil
}

func (r *transactionRepository) SumCompletedByTypes(ctx context.Context, userID uuid.UUID, types ...ledger.TxType) (int64, error) {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("user_id = ? AND status = ? AND type IN ?", userID, string(ledger.TxCompleted), names).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, translateError(err)
}

func transactionsToDomain(ms []Transaction) []*ledger.Transaction {
	txs := make([]*ledger.Transaction, 0, len(ms))
	for i := range ms {
		txs = append(txs, transactionToDomain(&ms[i]))
	}
	return txs
}

func transactionToDomain(m *Transaction) *ledger.Transaction {
	return &ledger.Transaction{
		ID:           m.ID,
		UserID:       m.UserID,
		Type:         ledger.TxType(m.Type),
		Amount:       money.NewFromMinor(m.Amount, currency.Code(m.Currency)),
		Status:       ledger.TxStatus(m.Status),
		InvestmentID: m.InvestmentID,
		ReferenceID:  m.ReferenceID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func transactionToModel(tx *ledger.Transaction) *Transaction {
	return &Transaction{
		ID:           tx.ID,
		UserID:       tx.UserID,
		Type:         string(tx.Type),
		Amount:       tx.Amount.Amount(),
		Currency:     tx.Amount.Currency().String(),
		Status:       string(tx.Status),
		InvestmentID: tx.InvestmentID,
		ReferenceID:  tx.ReferenceID,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
}

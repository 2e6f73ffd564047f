package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	dbm "roamly/internal/models/db_models"
)

type TransactionRepository interface {
	Insert(ctx context.Context, txn *dbm.Transaction) error
	FindByProviderTxnID(ctx context.Context, providerTxnID string) (*dbm.Transaction, error)

	// MarkPaid flips a pending transaction to paid. Already-paid rows are
	// left alone so webhook retries stay idempotent; returns true when this
	// call did the flip.
	MarkPaid(ctx context.Context, providerTxnID string) (bool, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *dbm.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByProviderTxnID(ctx context.Context, providerTxnID string) (*dbm.Transaction, error) {
	var txn dbm.Transaction
	err := r.db.WithContext(ctx).Where("provider_txn_id = ?", providerTxnID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) MarkPaid(ctx context.Context, providerTxnID string) (bool, error) {
	now := time.Now().Unix()
	res := r.db.WithContext(ctx).
		Model(&dbm.Transaction{}).
		Where("provider_txn_id = ? AND status = ?", providerTxnID, dbm.TxnStatusPending).
		Updates(map[string]interface{}{
			"status":     dbm.TxnStatusPaid,
			"paid_at":    now,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

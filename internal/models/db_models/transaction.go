package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransactionStatus string

const (
	TxnStatusPending TransactionStatus = "pending"
	TxnStatusPaid    TransactionStatus = "paid"
	TxnStatusFailed  TransactionStatus = "failed"
)

// Transaction links a local checkout attempt to the payment provider session.
type Transaction struct {
	BaseModel
	UserID      uuid.UUID         `gorm:"index" json:"user_id"`
	PlanType    string            `json:"plan_type"`
	AmountMinor int64             `json:"amount_minor"`
	Currency    string            `gorm:"size:3" json:"currency"`
	Status      TransactionStatus `gorm:"index;default:pending" json:"status"`

	Provider      string `gorm:"index" json:"provider"`
	ProviderTxnID string `gorm:"index" json:"provider_txn_id"`

	PaidAt *int64 `json:"paid_at"`

	Metadata datatypes.JSON `json:"metadata"`
}

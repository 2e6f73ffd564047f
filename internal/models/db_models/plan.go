package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Plan holds the authoritative AI credit balance for one user. Mutated only by
// the atomic debit in the generation flow and by the payment webhook refill.
type Plan struct {
	BaseModel
	Name              string         `json:"name"`
	Description       string         `gorm:"default:''" json:"description"`
	PriceMinor        int64          `json:"price_minor"`
	Currency          string         `gorm:"size:3;default:USD" json:"currency"`
	DurationDays      int            `gorm:"default:30" json:"duration_days"`
	AICredits         int64          `gorm:"column:ai_credits" json:"ai_credits"`
	CreditCostPerTrip int64          `gorm:"default:10" json:"credit_cost_per_trip"`
	Features          datatypes.JSON `json:"features"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	UserID            uuid.UUID      `gorm:"index" json:"user_id"`
}

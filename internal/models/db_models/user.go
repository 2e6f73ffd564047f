package db_models

import (
	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubStatusActive  SubscriptionStatus = "active"
	SubStatusExpired SubscriptionStatus = "expired"
	SubStatusNone    SubscriptionStatus = "none"
)

type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;size:20" json:"username"`
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Country      string `json:"country"`
	City         string `json:"city"`
	ProfileImage string `json:"profile_image"`
	IsBlocked    bool   `gorm:"default:false" json:"is_blocked"`
	Role         string `gorm:"default:user" json:"role"`

	// Subscription snapshot. The credit counter here is display-only; the Plan
	// row holds the authoritative balance and is the one debited atomically.
	SubscriptionPlanID   *uuid.UUID         `gorm:"index" json:"subscription_plan_id"`
	SubscriptionStatus   SubscriptionStatus `gorm:"default:none" json:"subscription_status"`
	SubscriptionStartsAt *int64             `json:"subscription_starts_at"`
	SubscriptionEndsAt   *int64             `json:"subscription_ends_at"`
	SubscriptionCredits  int64              `json:"subscription_credits"`

	ResetPasswordToken  string `gorm:"index" json:"-"`
	ResetPasswordExpire *int64 `json:"-"`
}

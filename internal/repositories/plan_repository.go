package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "roamly/internal/models/db_models"
	"roamly/pkg/utils"
)

type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Plan, error)

	// DebitCredits decrements the plan balance by amount if and only if the
	// balance covers it, in a single conditional UPDATE. Returns the balance
	// after the debit.
	DebitCredits(ctx context.Context, planID uuid.UUID, amount int64) (int64, error)

	// GrantCredits is the webhook refill: sets the balance and resets the
	// per-trip cost and plan duration, atomically with the buyer's
	// subscription snapshot.
	GrantCredits(ctx context.Context, planID uuid.UUID, userID uuid.UUID, credits int64) error

	Insert(ctx context.Context, plan *dbm.Plan) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Plan, error) {
	var plan dbm.Plan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) Insert(ctx context.Context, plan *dbm.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *planRepository) DebitCredits(ctx context.Context, planID uuid.UUID, amount int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&dbm.Plan{}).
		Where("id = ? AND ai_credits >= ?", planID, amount).
		Updates(map[string]interface{}{
			"ai_credits": gorm.Expr("ai_credits - ?", amount),
			"updated_at": time.Now().Unix(),
		})
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the plan is gone or the balance no longer covers the cost.
		plan, err := r.FindByID(ctx, planID)
		if err != nil {
			return 0, err
		}
		if plan == nil {
			return 0, utils.ErrPlanNotFound
		}
		return 0, utils.ErrInsufficientCredits
	}

	plan, err := r.FindByID(ctx, planID)
	if err != nil {
		return 0, err
	}
	if plan == nil {
		return 0, utils.ErrPlanNotFound
	}
	return plan.AICredits, nil
}

func (r *planRepository) GrantCredits(ctx context.Context, planID uuid.UUID, userID uuid.UUID, credits int64) error {
	now := time.Now()
	endsAt := now.AddDate(0, 0, 30).Unix()
	startsAt := now.Unix()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&dbm.Plan{}).
			Where("id = ?", planID).
			Updates(map[string]interface{}{
				"ai_credits":           credits,
				"credit_cost_per_trip": 10,
				"duration_days":        30,
				"updated_at":           startsAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.ErrPlanNotFound
		}

		return tx.Model(&dbm.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"subscription_plan_id":   planID,
				"subscription_status":    dbm.SubStatusActive,
				"subscription_starts_at": startsAt,
				"subscription_ends_at":   endsAt,
				"subscription_credits":   credits,
			}).Error
	})
}

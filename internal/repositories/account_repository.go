package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "roamly/internal/models/db_models"
)

type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error)
	FindByEmail(ctx context.Context, email string) (*dbm.User, error)
	FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*dbm.User, error)
	FindByUsername(ctx context.Context, username string) (*dbm.User, error)
	Insert(ctx context.Context, user *dbm.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt int64) error
	FindByResetToken(ctx context.Context, tokenHash string, now int64) (*dbm.User, error)
	RefreshCreditSnapshot(ctx context.Context, userID uuid.UUID, credits int64) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) FindByEmailOrUsername(ctx context.Context, emailOrUsername string) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).
		Where("email = ? OR username = ?", emailOrUsername, emailOrUsername).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *accountRepository) Insert(ctx context.Context, user *dbm.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *accountRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash":         passwordHash,
			"reset_password_token":  "",
			"reset_password_expire": nil,
		}).Error
}

func (r *accountRepository) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt int64) error {
	return r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_password_token":  tokenHash,
			"reset_password_expire": expiresAt,
		}).Error
}

func (r *accountRepository) FindByResetToken(ctx context.Context, tokenHash string, now int64) (*dbm.User, error) {
	var user dbm.User
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, now).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// RefreshCreditSnapshot overwrites the display-only credit copy on the user
// row from the authoritative plan balance.
func (r *accountRepository) RefreshCreditSnapshot(ctx context.Context, userID uuid.UUID, credits int64) error {
	return r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("id = ?", userID).
		Update("subscription_credits", credits).Error
}

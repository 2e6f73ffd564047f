package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/models/request_models"
	"roamly/internal/models/response_models"
	"roamly/internal/repositories"
	"roamly/pkg/utils"
)

const resetTokenTTL = 10 * time.Minute

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error)
	GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) Register(ctx context.Context, req request_models.SignUpRequest) (*response_models.AccountResponse, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	existing, err = s.accountRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrUsernameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &dbm.User{
		Username:           req.Username,
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       hash,
		Country:            req.Country,
		City:               req.City,
		Role:               "user",
		SubscriptionStatus: dbm.SubStatusNone,
	}
	if err := s.accountRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toAccountResponse(user)
	return &resp, nil
}

func (s *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.LoginResponse, error) {
	user, err := s.accountRepo.FindByEmailOrUsername(ctx, req.EmailOrUsername)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, utils.ErrAccountBlocked
	}

	token, err := utils.CreateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &response_models.LoginResponse{
		Token:   token,
		Account: toAccountResponse(user),
	}, nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrUnauthenticated
	}

	user, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(user)
	return &resp, nil
}

// RequestPasswordReset issues a short-lived single-use token. Only the digest
// is persisted; the plain token is delivered out of band.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(resetTokenTTL).Unix()

	if err := s.accountRepo.SetResetToken(ctx, user.ID, utils.HashResetToken(token), expiresAt); err != nil {
		return utils.ErrDatabaseError
	}

	// No mail provider is wired up; the token lands in the server log the
	// way a delivery webhook payload would.
	log.Printf("password reset requested for %s, token %s (expires in %s)", user.Email, token, resetTokenTTL)
	return nil
}

func (s *AccountService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	if token == "" {
		return utils.ErrInvalidResetToken
	}

	user, err := s.accountRepo.FindByResetToken(ctx, utils.HashResetToken(token), time.Now().Unix())
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.accountRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func toAccountResponse(user *dbm.User) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:                 user.ID.String(),
		Username:           user.Username,
		Name:               user.Name,
		Email:              user.Email,
		Country:            user.Country,
		City:               user.City,
		SubscriptionStatus: string(user.SubscriptionStatus),
	}
}

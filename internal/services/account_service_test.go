package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/models/request_models"
	"roamly/internal/repositories"
	"roamly/pkg/utils"
)

func validSignUp() request_models.SignUpRequest {
	return request_models.SignUpRequest{
		Username: "wanderer",
		Name:     "Wanda",
		Email:    "wanda@example.com",
		Password: "secret123",
		Country:  "PT",
		City:     "Lisbon",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(repositories.NewAccountRepository(db))
	ctx := t.Context()

	account, err := svc.Register(ctx, validSignUp())
	require.NoError(t, err)
	assert.Equal(t, "wanderer", account.Username)
	assert.Equal(t, string(dbm.SubStatusNone), account.SubscriptionStatus)
	assert.NotEmpty(t, account.ID)

	resp, err := svc.Login(ctx, request_models.LoginRequest{
		EmailOrUsername: "wanda@example.com",
		Password:        "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, account.ID, resp.Account.ID)

	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.Subject)
	assert.Equal(t, "user", claims.Role)

	// Username works in place of the email.
	resp, err = svc.Login(ctx, request_models.LoginRequest{
		EmailOrUsername: "wanderer",
		Password:        "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterDuplicates(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(repositories.NewAccountRepository(db))
	ctx := t.Context()

	_, err := svc.Register(ctx, validSignUp())
	require.NoError(t, err)

	dup := validSignUp()
	dup.Username = "someoneelse"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)

	dup = validSignUp()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, utils.ErrUsernameTaken)
}

func TestLoginRejections(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewAccountRepository(db)
	svc := NewAccountService(repo)
	ctx := t.Context()

	account, err := svc.Register(ctx, validSignUp())
	require.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{EmailOrUsername: "wanda@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{EmailOrUsername: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.NoError(t, db.Model(&dbm.User{}).Where("id = ?", account.ID).Update("is_blocked", true).Error)
	_, err = svc.Login(ctx, request_models.LoginRequest{EmailOrUsername: "wanda@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrAccountBlocked)
}

func TestGetProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(repositories.NewAccountRepository(db))
	ctx := t.Context()

	account, err := svc.Register(ctx, validSignUp())
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "wanda@example.com", got.Email)

	_, err = svc.GetProfile(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestPasswordResetFlow(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewAccountRepository(db)
	svc := NewAccountService(repo)
	ctx := t.Context()

	account, err := svc.Register(ctx, validSignUp())
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "wanda@example.com"))

	var stored dbm.User
	require.NoError(t, db.Where("email = ?", "wanda@example.com").First(&stored).Error)
	assert.NotEmpty(t, stored.ResetPasswordToken)
	require.NotNil(t, stored.ResetPasswordExpire)

	// The plain token only leaves via the delivery channel; drive the reset
	// with a token whose digest we control.
	token, err := utils.GenerateSecureToken(32)
	require.NoError(t, err)
	require.NoError(t, repo.SetResetToken(ctx, stored.ID, utils.HashResetToken(token), *stored.ResetPasswordExpire))

	require.NoError(t, svc.ResetPassword(ctx, token, "newsecret456"))

	_, err = svc.Login(ctx, request_models.LoginRequest{EmailOrUsername: "wanda@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	resp, err := svc.Login(ctx, request_models.LoginRequest{EmailOrUsername: "wanda@example.com", Password: "newsecret456"})
	require.NoError(t, err)
	assert.Equal(t, account.ID, resp.Account.ID)

	// The token is single-use: the reset clears it.
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "again789"), utils.ErrInvalidResetToken)
}

func TestPasswordResetRejections(t *testing.T) {
	db := openTestDB(t)
	svc := NewAccountService(repositories.NewAccountRepository(db))
	ctx := t.Context()

	assert.ErrorIs(t, svc.RequestPasswordReset(ctx, "ghost@example.com"), utils.ErrAccountNotFound)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "bogus-token", "whatever1"), utils.ErrInvalidResetToken)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "", "whatever1"), utils.ErrInvalidResetToken)
}

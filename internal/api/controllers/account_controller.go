package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roamly/internal/models/request_models"
	"roamly/internal/services"
	"roamly/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "Account created successfully")
}

// Login godoc
// @Summary Authenticate and receive a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Login successful")
}

// Me godoc
// @Summary Current account profile
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/me [get]
func (a *AccountController) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		utils.HandleServiceError(c, utils.ErrUnauthenticated)
		return
	}

	account, err := a.accountService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "OK")
}

// Logout godoc
// @Summary End the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	// Bearer tokens are stateless; discarding the token is the client's
	// side of the handshake. The endpoint gives clients a uniform call and
	// confirms the token they presented was still valid.
	utils.RespondSuccess(c, nil, "Logged out successfully")
}

// ForgotPassword godoc
// @Summary Request a password reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RequestForgotPassword true "Email payload"
// @Success 200 {object} utils.APIResponse
// @Router /auth/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.RequestForgotPassword
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password reset email sent")
}

// ResetPassword godoc
// @Summary Reset password with a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body request_models.ResetPasswordRequest true "New password payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/reset-password/{token} [put]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPassword(c.Request.Context(), c.Param("token"), req.NewPassword); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Password updated successfully")
}

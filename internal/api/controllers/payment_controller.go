package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"roamly/internal/models/request_models"
	"roamly/internal/services"
	"roamly/pkg/utils"
)

// webhookBodyLimit caps how much of a webhook payload is read. Stripe events
// are small; anything larger is not one of ours.
const webhookBodyLimit = 1 << 16

type PaymentController struct {
	paymentService services.PaymentServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// Checkout godoc
// @Summary Start a credit bundle checkout
// @Tags Payments
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client idempotency key"
// @Param request body request_models.CreateCheckoutRequest true "Plan selection"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /payments/checkout [post]
func (p *PaymentController) Checkout(c *gin.Context) {
	var req request_models.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.paymentService.CreateCheckout(
		c.Request.Context(),
		c.GetString("user_id"),
		c.GetHeader("Idempotency-Key"),
		req,
	)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Checkout session created")
}

// Webhook godoc
// @Summary Stripe webhook receiver
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /payments/webhook [post]
func (p *PaymentController) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unreadable payload")
		return
	}

	if err := p.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"received": true}, "OK")
}

package request_models

type CreateCheckoutRequest struct {
	PlanType string `json:"plan_type" binding:"required"`
}

package response_models

type AccountResponse struct {
	ID                 string `json:"id"`
	Username           string `json:"username"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Country            string `json:"country"`
	City               string `json:"city"`
	SubscriptionStatus string `json:"subscription_status"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

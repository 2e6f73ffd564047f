package response_models

type CreateCheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
	Provider  string `json:"provider"`
}

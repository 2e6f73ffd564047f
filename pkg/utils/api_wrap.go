package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	id, _ := c.Get("trace_id")
	s, _ := id.(string)
	return s
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondErrorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

// HandleServiceError maps service-layer errors onto the HTTP taxonomy.
func HandleServiceError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var outputErr *ModelOutputError

	switch {
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &outputErr):
		respondErrorData(c, http.StatusInternalServerError, "AI returned invalid JSON.",
			gin.H{"raw_response_preview": outputErr.Preview})
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, "Unauthenticated")
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrUsernameTaken):
		RespondError(c, http.StatusBadRequest, "Username is already taken")
	case errors.Is(err, ErrInvalidPlanType):
		RespondError(c, http.StatusBadRequest, "Invalid plan type")
	case errors.Is(err, ErrInvalidWebhookEvent):
		RespondError(c, http.StatusBadRequest, "Invalid webhook event")
	case errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "User plan not found.")
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found.")
	case errors.Is(err, ErrAccountBlocked):
		RespondError(c, http.StatusForbidden, "User account is blocked.")
	case errors.Is(err, ErrNotItineraryOwner):
		RespondError(c, http.StatusForbidden, "Unauthorized access.")
	case errors.Is(err, ErrInsufficientCredits):
		RespondError(c, http.StatusForbidden, "Insufficient AI credits.")
	case errors.Is(err, ErrCheckoutLocked):
		RespondError(c, http.StatusConflict, "A checkout for this key is already in progress.")
	case errors.Is(err, ErrAIServiceUnavailable):
		RespondError(c, http.StatusBadGateway, "AI service error")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

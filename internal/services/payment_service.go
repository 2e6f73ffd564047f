package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/models/request_models"
	"roamly/internal/models/response_models"
	"roamly/internal/repositories"
	"roamly/pkg/memcache"
	"roamly/pkg/utils"
)

// checkoutLockTTL bounds how long an Idempotency-Key blocks a duplicate
// checkout attempt.
const checkoutLockTTL = 300 * time.Second

// planOffer is one purchasable credit bundle.
type planOffer struct {
	PriceEnv    string
	Credits     int64
	AmountMinor int64
	Currency    string
}

var planCatalog = map[string]planOffer{
	"gold":   {PriceEnv: "STRIPE_PRICE_GOLD", Credits: 100, AmountMinor: 1999, Currency: "usd"},
	"silver": {PriceEnv: "STRIPE_PRICE_SILVER", Credits: 50, AmountMinor: 999, Currency: "usd"},
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

func LoadStripeConfig() StripeConfig {
	return StripeConfig{
		SecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SuccessURL:    os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:     os.Getenv("CHECKOUT_CANCEL_URL"),
	}
}

type PaymentServiceInterface interface {
	CreateCheckout(ctx context.Context, userID string, idempotencyKey string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	FulfillCheckout(ctx context.Context, sessionID string, userID string, planType string) error
}

type PaymentService struct {
	accountRepo repositories.AccountRepository
	planRepo    repositories.PlanRepository
	txnRepo     repositories.TransactionRepository
	locks       memcache.LockStore
	cfg         StripeConfig
}

func NewPaymentService(
	accountRepo repositories.AccountRepository,
	planRepo repositories.PlanRepository,
	txnRepo repositories.TransactionRepository,
	locks memcache.LockStore,
	cfg StripeConfig,
) PaymentServiceInterface {
	stripe.Key = cfg.SecretKey
	return &PaymentService{
		accountRepo: accountRepo,
		planRepo:    planRepo,
		txnRepo:     txnRepo,
		locks:       locks,
		cfg:         cfg,
	}
}

func (s *PaymentService) CreateCheckout(ctx context.Context, userID string, idempotencyKey string, req request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	userUUID, err := parseCaller(userID)
	if err != nil {
		return nil, err
	}

	planType := strings.ToLower(req.PlanType)
	offer, ok := planCatalog[planType]
	if !ok {
		return nil, utils.ErrInvalidPlanType
	}

	if idempotencyKey != "" {
		acquired, err := s.locks.Acquire(ctx, userID+":"+idempotencyKey, checkoutLockTTL)
		if err != nil {
			log.Printf("checkout lock acquire failed for user %s: %v", userID, err)
		} else if !acquired {
			return nil, utils.ErrCheckoutLocked
		}
	}

	user, err := s.accountRepo.FindByID(ctx, userUUID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	if user.IsBlocked {
		return nil, utils.ErrAccountBlocked
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(os.Getenv(offer.PriceEnv)),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:    stripe.String(s.cfg.SuccessURL),
		CancelURL:     stripe.String(s.cfg.CancelURL),
		CustomerEmail: stripe.String(user.Email),
	}
	params.AddMetadata("user_id", user.ID.String())
	params.AddMetadata("plan_type", planType)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	metadata, _ := json.Marshal(map[string]string{"idempotency_key": idempotencyKey})
	txn := &dbm.Transaction{
		UserID:        user.ID,
		PlanType:      planType,
		AmountMinor:   offer.AmountMinor,
		Currency:      offer.Currency,
		Status:        dbm.TxnStatusPending,
		Provider:      "stripe",
		ProviderTxnID: sess.ID,
		Metadata:      metadata,
	}
	if err := s.txnRepo.Insert(ctx, txn); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateCheckoutResponse{
		URL:       sess.URL,
		SessionID: sess.ID,
		Provider:  "stripe",
	}, nil
}

func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		return utils.ErrInvalidWebhookEvent
	}

	if event.Type != "checkout.session.completed" {
		// Unhandled event types are acknowledged, not rejected, so Stripe
		// does not keep retrying them.
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return utils.ErrInvalidWebhookEvent
	}

	return s.FulfillCheckout(ctx, sess.ID, sess.Metadata["user_id"], sess.Metadata["plan_type"])
}

// FulfillCheckout grants the purchased credits for a completed checkout
// session. Safe to call more than once per session: the pending-to-paid flip
// on the transaction row is the idempotency gate.
func (s *PaymentService) FulfillCheckout(ctx context.Context, sessionID string, userID string, planType string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrInvalidWebhookEvent
	}

	offer, ok := planCatalog[strings.ToLower(planType)]
	if !ok {
		return utils.ErrInvalidPlanType
	}

	flipped, err := s.txnRepo.MarkPaid(ctx, sessionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !flipped {
		txn, err := s.txnRepo.FindByProviderTxnID(ctx, sessionID)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if txn != nil && txn.Status == dbm.TxnStatusPaid {
			return nil
		}
		// No local row for this session. Checkout state was lost before the
		// webhook arrived; still honor the payment.
		log.Printf("fulfilling checkout %s without a local transaction row", sessionID)
	}

	user, err := s.accountRepo.FindByID(ctx, userUUID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	planID, err := s.ensurePlan(ctx, user, strings.ToLower(planType), offer)
	if err != nil {
		return err
	}

	if err := s.planRepo.GrantCredits(ctx, planID, user.ID, offer.Credits); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ensurePlan returns the user's personal plan row, creating one for
// first-time buyers.
func (s *PaymentService) ensurePlan(ctx context.Context, user *dbm.User, planType string, offer planOffer) (uuid.UUID, error) {
	if user.SubscriptionPlanID != nil {
		plan, err := s.planRepo.FindByID(ctx, *user.SubscriptionPlanID)
		if err != nil {
			return uuid.Nil, utils.ErrDatabaseError
		}
		if plan != nil {
			return plan.ID, nil
		}
	}

	plan := &dbm.Plan{
		Name:        planType,
		Description: fmt.Sprintf("%s credit bundle", planType),
		PriceMinor:  offer.AmountMinor,
		Currency:    offer.Currency,
		IsActive:    true,
		UserID:      user.ID,
	}
	if err := s.planRepo.Insert(ctx, plan); err != nil {
		return uuid.Nil, utils.ErrDatabaseError
	}
	return plan.ID, nil
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/models/request_models"
	"roamly/internal/repositories"
	"roamly/pkg/memcache"
	"roamly/pkg/utils"
)

func newPaymentService(db *gorm.DB, locks memcache.LockStore) PaymentServiceInterface {
	return NewPaymentService(
		repositories.NewAccountRepository(db),
		repositories.NewPlanRepository(db),
		repositories.NewTransactionRepository(db),
		locks,
		StripeConfig{WebhookSecret: "whsec_test"},
	)
}

func seedBuyer(t *testing.T, db *gorm.DB) *dbm.User {
	t.Helper()
	user := &dbm.User{Username: "buyer", Name: "Buyer", Email: "buyer@example.com", PasswordHash: "x"}
	require.NoError(t, repositories.NewAccountRepository(db).Insert(t.Context(), user))
	return user
}

func TestFulfillCheckoutFirstPurchase(t *testing.T) {
	db := openTestDB(t)
	svc := newPaymentService(db, memcache.NewLocalLockStore())
	user := seedBuyer(t, db)
	ctx := t.Context()

	txnRepo := repositories.NewTransactionRepository(db)
	require.NoError(t, txnRepo.Insert(ctx, &dbm.Transaction{
		UserID:        user.ID,
		PlanType:      "gold",
		AmountMinor:   1999,
		Currency:      "usd",
		Status:        dbm.TxnStatusPending,
		Provider:      "stripe",
		ProviderTxnID: "cs_test_1",
	}))

	require.NoError(t, svc.FulfillCheckout(ctx, "cs_test_1", user.ID.String(), "gold"))

	gotUser, err := repositories.NewAccountRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, gotUser.SubscriptionPlanID)
	assert.Equal(t, dbm.SubStatusActive, gotUser.SubscriptionStatus)
	assert.EqualValues(t, 100, gotUser.SubscriptionCredits)

	gotPlan, err := repositories.NewPlanRepository(db).FindByID(ctx, *gotUser.SubscriptionPlanID)
	require.NoError(t, err)
	require.NotNil(t, gotPlan)
	assert.EqualValues(t, 100, gotPlan.AICredits)
	assert.EqualValues(t, 10, gotPlan.CreditCostPerTrip)
	assert.Equal(t, user.ID, gotPlan.UserID)

	gotTxn, err := txnRepo.FindByProviderTxnID(ctx, "cs_test_1")
	require.NoError(t, err)
	require.NotNil(t, gotTxn)
	assert.Equal(t, dbm.TxnStatusPaid, gotTxn.Status)
	require.NotNil(t, gotTxn.PaidAt)
	assert.InDelta(t, time.Now().Unix(), *gotTxn.PaidAt, 5)
}

func TestFulfillCheckoutIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := newPaymentService(db, memcache.NewLocalLockStore())
	user := seedBuyer(t, db)
	ctx := t.Context()

	txnRepo := repositories.NewTransactionRepository(db)
	require.NoError(t, txnRepo.Insert(ctx, &dbm.Transaction{
		UserID: user.ID, PlanType: "silver", Status: dbm.TxnStatusPending,
		Provider: "stripe", ProviderTxnID: "cs_test_2",
	}))

	require.NoError(t, svc.FulfillCheckout(ctx, "cs_test_2", user.ID.String(), "silver"))

	// Spend some credits, then replay the webhook. The replay must not
	// refill the balance.
	gotUser, err := repositories.NewAccountRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	planRepo := repositories.NewPlanRepository(db)
	_, err = planRepo.DebitCredits(ctx, *gotUser.SubscriptionPlanID, 10)
	require.NoError(t, err)

	require.NoError(t, svc.FulfillCheckout(ctx, "cs_test_2", user.ID.String(), "silver"))

	gotPlan, err := planRepo.FindByID(ctx, *gotUser.SubscriptionPlanID)
	require.NoError(t, err)
	assert.EqualValues(t, 40, gotPlan.AICredits)
}

func TestFulfillCheckoutWithoutLocalTransaction(t *testing.T) {
	db := openTestDB(t)
	svc := newPaymentService(db, memcache.NewLocalLockStore())
	user := seedBuyer(t, db)
	ctx := t.Context()

	// The payment is still honored when the pending row was lost.
	require.NoError(t, svc.FulfillCheckout(ctx, "cs_orphan", user.ID.String(), "gold"))

	gotUser, err := repositories.NewAccountRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, gotUser.SubscriptionCredits)
}

func TestFulfillCheckoutRejections(t *testing.T) {
	db := openTestDB(t)
	svc := newPaymentService(db, memcache.NewLocalLockStore())
	user := seedBuyer(t, db)
	ctx := t.Context()

	assert.ErrorIs(t, svc.FulfillCheckout(ctx, "cs_x", user.ID.String(), "platinum"), utils.ErrInvalidPlanType)
	assert.ErrorIs(t, svc.FulfillCheckout(ctx, "cs_x", "not-a-uuid", "gold"), utils.ErrInvalidWebhookEvent)
}

func TestCreateCheckoutRejections(t *testing.T) {
	db := openTestDB(t)
	locks := memcache.NewLocalLockStore()
	svc := newPaymentService(db, locks)
	user := seedBuyer(t, db)
	ctx := t.Context()

	_, err := svc.CreateCheckout(ctx, "", "", request_models.CreateCheckoutRequest{PlanType: "gold"})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = svc.CreateCheckout(ctx, user.ID.String(), "", request_models.CreateCheckoutRequest{PlanType: "platinum"})
	assert.ErrorIs(t, err, utils.ErrInvalidPlanType)
}

func TestCreateCheckoutIdempotencyKeyHeld(t *testing.T) {
	db := openTestDB(t)
	locks := memcache.NewLocalLockStore()
	svc := newPaymentService(db, locks)
	user := seedBuyer(t, db)
	ctx := t.Context()

	held, err := locks.Acquire(ctx, user.ID.String()+":key-1", time.Minute)
	require.NoError(t, err)
	require.True(t, held)

	_, err = svc.CreateCheckout(ctx, user.ID.String(), "key-1", request_models.CreateCheckoutRequest{PlanType: "gold"})
	assert.ErrorIs(t, err, utils.ErrCheckoutLocked)
}

func TestHandleWebhookBadSignature(t *testing.T) {
	db := openTestDB(t)
	svc := newPaymentService(db, memcache.NewLocalLockStore())

	err := svc.HandleWebhook(t.Context(), []byte(`{"type":"checkout.session.completed"}`), "t=1,v1=bogus")
	assert.ErrorIs(t, err, utils.ErrInvalidWebhookEvent)
}

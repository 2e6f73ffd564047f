package payment_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamly/internal/repositories"
	"roamly/internal/services"
	mem "roamly/pkg/memcache"
)

var Module = fx.Provide(
	providePaymentService, provideTransactionRepo)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func providePaymentService(
	accountRepo repositories.AccountRepository,
	planRepo repositories.PlanRepository,
	txnRepo repositories.TransactionRepository,
	locks mem.LockStore,
) services.PaymentServiceInterface {
	return services.NewPaymentService(accountRepo, planRepo, txnRepo, locks, services.LoadStripeConfig())
}

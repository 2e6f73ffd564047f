package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamly/internal/repositories"
	"roamly/internal/services"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo)
}

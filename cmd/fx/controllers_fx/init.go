package controllers_fx

import (
	"go.uber.org/fx"

	"roamly/internal/api/controllers"
)

var Module = fx.Provide(
	controllers.NewAccountController,
	controllers.NewItineraryController,
	controllers.NewPaymentController,
)

package gateway_fx

import (
	"log"

	"go.uber.org/fx"

	"roamly/pkg/aigateway"
)

var Module = fx.Provide(provideGateway)

func provideGateway() aigateway.Gateway {
	gw, err := aigateway.FromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize AI gateway: %v", err)
	}
	return gw
}

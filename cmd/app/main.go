package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"roamly/cmd/fx/account_fx"
	"roamly/cmd/fx/controllers_fx"
	"roamly/cmd/fx/db_fx"
	"roamly/cmd/fx/gateway_fx"
	"roamly/cmd/fx/itinerary_fx"
	"roamly/cmd/fx/memcache_fx"
	"roamly/cmd/fx/payment_fx"
	"roamly/internal/api/controllers"
	"roamly/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		gateway_fx.Module,
		account_fx.Module,
		itinerary_fx.Module,
		payment_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	paymentController *controllers.PaymentController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, itineraryController, paymentController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	paymentController *controllers.PaymentController) {

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", accountController.Register)
	auth.POST("/login", accountController.Login)
	auth.POST("/forgot-password", accountController.ForgotPassword)
	auth.PUT("/reset-password/:token", accountController.ResetPassword)
	auth.POST("/logout", middleware.JWTAuthMiddleware(), accountController.Logout)
	auth.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)

	itineraries := api.Group("/itineraries", middleware.JWTAuthMiddleware())
	itineraries.POST("/generate", itineraryController.Generate)
	itineraries.GET("", itineraryController.List)
	itineraries.GET("/:id", itineraryController.Get)
	itineraries.POST("/:id/hotels", itineraryController.GenerateHotels)
	itineraries.POST("/:id/flights", itineraryController.GenerateFlights)

	payments := api.Group("/payments")
	payments.POST("/checkout", middleware.JWTAuthMiddleware(), paymentController.Checkout)
	payments.POST("/webhook", paymentController.Webhook)
}

package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/calcprep/calcprep-api/billing"
	"github.com/calcprep/calcprep-api/config"
	"github.com/calcprep/calcprep-api/handlers"
	"github.com/calcprep/calcprep-api/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()
	authMiddleware := middleware.EnsureValidToken()

	stripeClient := billing.NewStripeClient(billing.StripeConfig{
		SecretKey:     config.Env.StripeSecretKey,
		WebhookSecret: config.Env.StripeWebhookSecret,
		PriceID:       config.Env.StripePriceID,
	})
	manager := billing.NewManager(
		config.Database,
		stripeClient,
		config.Env.StripePriceID,
		config.Env.CheckoutSuccessURL,
		config.Env.CheckoutCancelURL,
	)

	DBHandler := &handlers.DBHandler{DB: config.Database, Billing: manager, Events: stripeClient}
	mux := http.NewServeMux()

	// Content
	mux.HandleFunc("GET /api/categories", DBHandler.GetCategories)
	mux.HandleFunc("GET /api/categories/{categorySlug}", DBHandler.GetCategoryBySlug)
	mux.HandleFunc("GET /api/topics/{topicSlug}", middleware.ResolveUser(DBHandler.GetTopicBySlug))

	// Identity
	mux.HandleFunc("POST /api/auth/session", DBHandler.CreateSession)
	mux.HandleFunc("GET /api/me", middleware.RequireUser(DBHandler.GetMe))
	mux.HandleFunc("GET /api/learning-path", middleware.RequireUser(DBHandler.GetLearningPath))

	// Billing
	mux.HandleFunc("POST /api/checkout", middleware.RequireUser(DBHandler.Checkout))
	mux.HandleFunc("POST /api/billing/sync", middleware.RequireUser(DBHandler.SyncSubscription))
	mux.HandleFunc("POST /api/webhooks/billing", DBHandler.HandleBillingWebhook)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://www.calcprep.io"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	// Server configuration

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	http.ListenAndServe(serverAddr, corsHandler)
}

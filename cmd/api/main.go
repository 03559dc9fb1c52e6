package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/coreyonbreeze/pbc-x402-api/internal/admin"
	"github.com/coreyonbreeze/pbc-x402-api/internal/catalog"
	"github.com/coreyonbreeze/pbc-x402-api/internal/clock"
	"github.com/coreyonbreeze/pbc-x402-api/internal/config"
	"github.com/coreyonbreeze/pbc-x402-api/internal/db"
	"github.com/coreyonbreeze/pbc-x402-api/internal/menu"
	"github.com/coreyonbreeze/pbc-x402-api/internal/middleware"
	"github.com/coreyonbreeze/pbc-x402-api/internal/order"
	"github.com/coreyonbreeze/pbc-x402-api/internal/payment"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.New()

	required := []string{
		"JWT_SECRET",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	if cfg.PaymentMode == config.ModeDemo {
		log.Println("⚠️ PAYMENT_API_KEY not set: DEMO payment mode, challenges carry a placeholder deposit address")
	}
	log.Printf("Payment network: %s (strict amount: %v)", cfg.Network, cfg.StrictAmount)

	// ───────────────────────── CATALOG ─────────────────────────
	cat := catalog.Builtin()
	var catalogRepo *catalog.PostgresRepository

	if cfg.DatabaseURL != "" {
		pgDB, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("❌ Postgres init failed:", err)
		}
		defer pgDB.Close()

		catalogRepo = catalog.NewPostgresRepository(pgDB)
		cat, err = catalogRepo.Load(context.Background())
		if err != nil {
			log.Fatal("❌ Catalog load failed:", err)
		}
	} else {
		log.Println("DATABASE_URL not set: serving built-in catalog")
	}

	store := catalog.NewStore(cat)

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", order.ProofHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── PAYMENT ─────────────────────────
	intents := payment.NewIntentClient(cfg.PaymentAPIKey, cfg.PaymentAPIURL)
	provisioner := payment.NewProvisioner(cfg, intents)
	verifier := payment.NewVerifier(cfg.StrictAmount)

	// ───────────────────────── PIPELINE + HANDLERS ─────────────────────────
	pipeline := order.NewPipeline(store, provisioner, verifier, cfg, clock.NewSystem())
	orderHandler := order.NewHandler(pipeline)
	menuHandler := menu.NewHandler(store)

	var loader admin.CatalogLoader
	if catalogRepo != nil {
		loader = catalogRepo
	}
	adminHandler := admin.NewHandler(cfg, store, loader, intents)

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/menu")
	{
		menus.GET("", menuHandler.List)
		menus.GET("/calculate", menuHandler.Calculate)
		menus.GET("/:id", menuHandler.Get)
	}

	// ───────────────────────── ORDER ROUTES ─────────────────────────
	r.POST("/order", orderHandler.Create)
	r.GET("/order/:id", orderHandler.Get)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	adminGroup := r.Group("/admin")
	adminGroup.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole("STAFF"),
	)
	{
		adminGroup.GET("/payment", adminHandler.PaymentInfo)
		adminGroup.GET("/payment/intents/:id", adminHandler.IntentStatus)
		adminGroup.POST("/catalog/reload", adminHandler.ReloadCatalog)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	log.Printf("🚀 API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

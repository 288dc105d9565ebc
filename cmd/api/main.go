package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/bramantyo/ombot-backend/internal/config"
	"github.com/bramantyo/ombot-backend/internal/modules/admin"
	"github.com/bramantyo/ombot-backend/internal/modules/auth"
	"github.com/bramantyo/ombot-backend/internal/modules/catalog"
	"github.com/bramantyo/ombot-backend/internal/modules/inventory"
	"github.com/bramantyo/ombot-backend/internal/modules/message"
	"github.com/bramantyo/ombot-backend/internal/modules/order"
	"github.com/bramantyo/ombot-backend/internal/modules/payment"
	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/bramantyo/ombot-backend/internal/modules/settings"
	"github.com/bramantyo/ombot-backend/internal/modules/store"
	"github.com/bramantyo/ombot-backend/internal/modules/user"
)

func main() {
	// A missing .env is fine in production; real env vars win either way.
	_ = godotenv.Load()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().Msg("connected to database")

	// ── Identity & tenancy ──────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	storeRepo := store.NewPostgresRepository(db)
	storeService := store.NewService(storeRepo, userRepo)

	pointsRepo := points.NewPostgresRepository(db)
	pointsService := points.NewService(pointsRepo)

	authService := auth.NewService(userRepo, storeService, pointsService, cfg.JWTSecret, cfg.TokenTTL)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(auth.Middleware(authService, "/auth/login", "/users/register"))

	user.NewHandler(userService).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)
	store.NewHandler(storeService).RegisterRoutes(router)
	points.NewHandler(pointsService).RegisterRoutes(router)

	// ── Payments ────────────────────────────────────────────
	gateway := payment.NewMidtransGateway(cfg.MidtransBaseURL, cfg.MidtransAPIURL, cfg.MidtransServerKey)
	paymentRepo := payment.NewPostgresRepository(db)
	paymentService := payment.NewService(paymentRepo, gateway, pointsService, log)
	payment.NewHandler(paymentService).RegisterRoutes(router)

	// ── Commerce ────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, pointsService)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Settings & messaging ────────────────────────────────
	settingsRepo := settings.NewPostgresRepository(db)
	settingsService := settings.NewService(settingsRepo, settings.NewSMTPDialer())
	if err := settingsService.SeedAppSettings(context.Background(), cfg.MidtransClientKey); err != nil {
		log.Fatal().Err(err).Msg("seed app settings")
	}
	settings.NewHandler(settingsService).RegisterRoutes(router)

	messageRepo := message.NewPostgresRepository(db)
	messageService := message.NewService(messageRepo)
	message.NewHandler(messageService).RegisterRoutes(router)

	// ── Platform administration ─────────────────────────────
	adminRepo := admin.NewPostgresRepository(db)
	adminService := admin.NewService(adminRepo, userRepo, storeService, storeRepo,
		pointsService, paymentService, settingsRepo)
	admin.NewHandler(adminService).RegisterRoutes(router)

	log.Info().Str("address", cfg.Address).Msg("ombot api listening")
	if err := http.ListenAndServe(cfg.Address, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

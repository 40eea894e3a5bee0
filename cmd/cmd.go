package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roa-marketplace-backend/internal/config"
	"roa-marketplace-backend/internal/handlers"
	"roa-marketplace-backend/internal/middleware"
	"roa-marketplace-backend/internal/push"
	"roa-marketplace-backend/internal/repository"
	"roa-marketplace-backend/internal/services"
	"roa-marketplace-backend/internal/storage"
	"roa-marketplace-backend/migrations"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Run migrations
	if err := runMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(db)
	loteRepo := repository.NewLoteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ordenRepo := repository.NewOrdenRepository(db)
	calificacionRepo := repository.NewCalificacionRepository(db)
	notificacionRepo := repository.NewNotificacionRepository(db)
	auditoriaRepo := repository.NewAuditoriaRepository(db)
	moderationRepo := repository.NewModerationRepository(db)

	// Initialize image storage
	imageStore, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create image store")
	}

	// Initialize push sender; nil when disabled
	apnsSender, err := push.NewAPNsSender(cfg.APNs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create APNs sender")
	}

	// Initialize services
	wsHub := services.NewWSHub(notificacionRepo)
	var pushSender services.PushSender
	if apnsSender != nil {
		pushSender = apnsSender
	}
	notificacionService := services.NewNotificacionService(notificacionRepo, profileRepo, wsHub, pushSender)
	authService := services.NewAuthService(profileRepo, cfg.JWT.Secret)
	profileService := services.NewProfileService(profileRepo)
	loteService := services.NewLoteService(loteRepo, notificacionService)
	searchService := services.NewSearchService(loteRepo)
	productoService := services.NewProductoService(productoRepo, imageStore)
	ordenService := services.NewOrdenService(ordenRepo, loteRepo, productoRepo, notificacionService)
	calificacionService := services.NewCalificacionService(calificacionRepo, ordenRepo)
	moderationService := services.NewModerationService(profileRepo, moderationRepo)
	adminService := services.NewAdminService(profileRepo, loteRepo, productoRepo, ordenRepo, calificacionRepo, auditoriaRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	loteHandler := handlers.NewLoteHandler(loteService)
	searchHandler := handlers.NewSearchHandler(searchService)
	productoHandler := handlers.NewProductoHandler(productoService)
	ordenHandler := handlers.NewOrdenHandler(ordenService)
	calificacionHandler := handlers.NewCalificacionHandler(calificacionService)
	notificacionHandler := handlers.NewNotificacionHandler(notificacionService)
	adminHandler := handlers.NewAdminHandler(adminService, moderationService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, authService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(authService))

			r.Get("/profile", profileHandler.Get)
			r.Patch("/profile", profileHandler.Update)
			r.Post("/profile/push-token", profileHandler.RegisterPushToken)

			r.Post("/lotes", loteHandler.Create)
			r.Get("/lotes", loteHandler.ListMine)
			r.Patch("/lotes/{lote_id}", loteHandler.Update)
			r.Post("/lotes/{lote_id}/status", loteHandler.ChangeStatus)
			r.Delete("/lotes/{lote_id}", loteHandler.Delete)

			r.Post("/search/lotes", searchHandler.SearchLotes)

			r.Post("/productos", productoHandler.Create)
			r.Get("/productos", productoHandler.List)
			r.Patch("/productos/{producto_id}", productoHandler.Update)
			r.Post("/productos/{producto_id}/images", productoHandler.PresignImage)

			r.Post("/ordenes", ordenHandler.Create)
			r.Get("/ordenes", ordenHandler.ListMine)
			r.Post("/ordenes/{orden_id}/accept", ordenHandler.Accept)
			r.Post("/ordenes/{orden_id}/cancel", ordenHandler.Cancel)
			r.Post("/ordenes/{orden_id}/complete", ordenHandler.Complete)

			r.Post("/calificaciones", calificacionHandler.Create)
			r.Delete("/calificaciones/{calificacion_id}", calificacionHandler.Delete)
			r.Post("/calificaciones/{calificacion_id}/report", calificacionHandler.Report)
			r.Get("/users/{user_id}/calificaciones", calificacionHandler.ListForUser)
			r.Get("/users/{user_id}/rating", calificacionHandler.RatingForUser)

			r.Get("/notificaciones", notificacionHandler.List)
			r.Post("/notificaciones/{notificacion_id}/read", notificacionHandler.MarkRead)
			r.Post("/notificaciones/read-all", notificacionHandler.MarkAllRead)

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(profileRepo))

				r.Get("/admin/profiles", adminHandler.ListProfiles)
				r.Get("/admin/lotes", adminHandler.ListLotes)
				r.Get("/admin/productos", adminHandler.ListProductos)
				r.Get("/admin/ordenes", adminHandler.ListOrdenes)
				r.Get("/admin/calificaciones", adminHandler.ListCalificaciones)
				r.Get("/admin/auditorias", adminHandler.ListAuditorias)
				r.Post("/admin/moderation", adminHandler.ApplyModeration)
			})
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// runMigrations applies the embedded goose migrations
func runMigrations(pool *pgxpool.Pool) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ateriyan143-bot/school-clinic/internal/config"
	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	accountHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/account"
	analyticsHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/analytics"
	authHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/auth"
	studentHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/student"
	visitHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/visit"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
	"github.com/ateriyan143-bot/school-clinic/internal/repository/postgres"
	"github.com/ateriyan143-bot/school-clinic/internal/router"
	accountService "github.com/ateriyan143-bot/school-clinic/internal/service/account"
	analyticsService "github.com/ateriyan143-bot/school-clinic/internal/service/analytics"
	authService "github.com/ateriyan143-bot/school-clinic/internal/service/auth"
	studentService "github.com/ateriyan143-bot/school-clinic/internal/service/student"
	visitService "github.com/ateriyan143-bot/school-clinic/internal/service/visit"
	"github.com/ateriyan143-bot/school-clinic/pkg/logger"
	"github.com/ateriyan143-bot/school-clinic/pkg/security"
	"github.com/ateriyan143-bot/school-clinic/pkg/token"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	hasher := security.NewScryptHasher()
	codec := token.NewCodec(cfg.Token.Secret, cfg.Token.Expiry)

	// Schema and seed admin are applied before the server accepts traffic.
	ctx := context.Background()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	if err := postgres.EnsureBootstrapAdmin(ctx, db, hasher,
		cfg.Bootstrap.TenantID, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed bootstrap admin")
	}

	accountRepo := postgres.NewAccountRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	visitRepo := postgres.NewVisitRepository(db)
	analyticsRepo := postgres.NewAnalyticsRepository(db)

	authSvc := authService.NewService(accountRepo, hasher, codec, cfg.Bootstrap.TenantID)
	accountSvc := accountService.NewService(accountRepo, hasher, codec)
	studentSvc := studentService.NewService(studentRepo)
	visitSvc := visitService.NewService(visitRepo, studentRepo)
	analyticsSvc := analyticsService.NewService(analyticsRepo)

	authMiddleware := middleware.NewAuthMiddleware(codec)

	r := router.NewRouter(
		authMiddleware,
		authHandler.NewHandler(authSvc, accountSvc),
		accountHandler.NewHandler(accountSvc),
		studentHandler.NewHandler(studentSvc),
		visitHandler.NewHandler(visitSvc),
		analyticsHandler.NewHandler(analyticsSvc),
		handler.NewHandler(),
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

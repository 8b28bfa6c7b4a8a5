package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/AmCoder2104/exam-portal-api/internal/config"
	"github.com/AmCoder2104/exam-portal-api/internal/handler"
	"github.com/AmCoder2104/exam-portal-api/internal/middleware"
	"github.com/AmCoder2104/exam-portal-api/internal/repository"
	"github.com/AmCoder2104/exam-portal-api/internal/seed"
	"github.com/AmCoder2104/exam-portal-api/internal/usecase"
	"github.com/AmCoder2104/exam-portal-api/shared/auth"
	"github.com/AmCoder2104/exam-portal-api/shared/mailer"
	"github.com/AmCoder2104/exam-portal-api/shared/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		// A missing session secret lands here: refuse to start rather
		// than run with insecure signing.
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.DatabaseName)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	questionRepo := repository.NewQuestionMongoRepository(ctx, &logger, db)
	testRepo := repository.NewTestMongoRepository(db)
	attemptRepo := repository.NewTestAttemptMongoRepository(ctx, &logger, db)
	resetTokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	sessions, err := auth.NewSessions(jwtAuth, cfg.Token.SessionSecret, cfg.Token.Issuer, cfg.Token.SessionExpiresIn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct session issuer")
	}

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct validator")
	}

	var smtp mailer.Sender
	if cfg.Debug && os.Getenv("SMTP_HOST") == "" {
		smtp = mailer.NewLogSender(&logger)
	} else {
		smtp = mailer.NewMailer(&logger)
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, sessions)
	questionUsecase := usecase.NewQuestionUsecase(questionRepo)
	attemptUsecase := usecase.NewAttemptUsecase(attemptRepo, testRepo, questionRepo)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, resetTokenRepo, jwtAuth, smtp, cfg)

	guard := middleware.NewGuard(sessions, &logger)

	router := handler.NewRouter(handler.RouterDeps{
		Config:        cfg,
		Logger:        &logger,
		Guard:         guard,
		Auth:          handler.NewAuthHandler(authUsecase, validator, &logger),
		PasswordReset: handler.NewPasswordResetHandler(resetUsecase, jwtAuth, cfg, validator, &logger),
		Questions:     handler.NewQuestionHandler(questionUsecase, validator, &logger),
		Attempts:      handler.NewAttemptHandler(attemptUsecase, validator, &logger),
		Dashboard:     handler.NewDashboardHandler(userRepo, questionRepo, testRepo, attemptRepo, &logger),
		Seeder:        seed.New(userRepo, questionRepo, testRepo),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return zerolog.New(os.Stderr).
		With().
		Timestamp().
		Str("service", "exam-portal-api").
		Logger()
}

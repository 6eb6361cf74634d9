package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/db"
	"mentorhub/internal/email"
	apihttp "mentorhub/internal/http"
	"mentorhub/internal/lifecycle"
	"mentorhub/internal/repository"
	"mentorhub/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	mentorRepo := repository.NewPgMentorRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	settingsRepo := repository.NewPgSettingsRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		loginLimiter service.LoginRateLimiter
		tokenStore   service.RefreshTokenStore
		promptStore  service.PromptStore
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 5)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			promptStore = service.NewRedisPromptStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	userSvc := service.NewUserService(logger, userRepo, settingsRepo, loginLimiter)
	mentorSvc := service.NewMentorService(mentorRepo)
	bookingSvc := service.NewBookingService(logger, sessionRepo, messageRepo, mentorRepo, emailSender)
	sessionSvc := service.NewSessionService(logger, sessionRepo, messageRepo, promptStore)
	messageSvc := service.NewMessageService(sessionRepo, messageRepo)
	ratingSvc := service.NewRatingService(logger, sessionRepo, mentorRepo, promptStore)
	settingsSvc := service.NewSettingsService(settingsRepo, userRepo)

	userHandler := apihttp.NewUserHandler(logger, userSvc, jwtSvc)
	mentorHandler := apihttp.NewMentorHandler(logger, mentorSvc)
	sessionHandler := apihttp.NewSessionHandler(logger, bookingSvc, sessionSvc, messageSvc, ratingSvc)
	settingsHandler := apihttp.NewSettingsHandler(logger, settingsSvc)
	router := apihttp.NewRouter(logger, jwtSvc, userHandler, mentorHandler, sessionHandler, settingsHandler)

	runner := lifecycle.NewRunner(sessionSvc, time.Duration(cfg.TickIntervalSeconds)*time.Second, logger)
	go runner.Start(ctx)
	defer runner.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

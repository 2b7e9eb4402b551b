package main

import (
	"telemed-service/internal/handler"
	"telemed-service/internal/middleware"
	"telemed-service/internal/repository"
	"telemed-service/internal/service"
	"telemed-service/pkg/config"
	"telemed-service/pkg/database"
	"telemed-service/pkg/hashutil"
	"telemed-service/pkg/jwtutil"
	"telemed-service/pkg/logger"
	"telemed-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting telemedicine auth service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Wire repositories and services
	hasher := hashutil.NewHasher(cfg.Hash.Cost)
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOtpRepository(db)

	otpService := service.NewOTPService(otpRepo, cfg.OTP.TTL, log)
	registrationService := service.NewRegistrationService(userRepo, hasher)
	authService := service.NewAuthService(userRepo, otpService, hasher)
	profileService := service.NewProfileService(userRepo)

	authHandler := handler.NewAuthHandler(registrationService, authService)
	profileHandler := handler.NewProfileHandler(profileService)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register/patient", authHandler.RegisterPatient)
	auth.POST("/register/doctor", authHandler.RegisterDoctor)
	auth.POST("/register/healthworker", authHandler.RegisterHealthWorker)
	auth.POST("/login/patient", authHandler.LoginPatient)
	auth.POST("/login", authHandler.Login)
	auth.POST("/login/stage1", authHandler.LoginStage1)
	auth.POST("/request-otp/patient", authHandler.RequestPatientOtp)
	auth.POST("/verify-otp", authHandler.VerifyOtp)

	// API routes - all require a verified bearer token
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)
	api.GET("/me", profileHandler.GetMe)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	httpapi "fitcoach-backend/internal/api/http"
	"fitcoach-backend/internal/config"
	"fitcoach-backend/internal/logger"
	"fitcoach-backend/internal/repository/firestore"
	"fitcoach-backend/internal/security"
	"fitcoach-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FitCoach Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Firestore configuration", "project_id", cfg.Firebase.ProjectID)

	ctx := context.Background()

	// Initialize Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.Firebase)
	if err != nil {
		logger.Error("Failed to connect to Firestore", "error", err)
		log.Fatalf("Failed to connect to Firestore: %v", err)
	}
	defer fsClient.Close()
	logger.Info("Firestore connection established")

	// Initialize Repositories
	store := firestore.NewStore(fsClient)

	// Initialize token verification
	var verifier security.TokenVerifier
	switch cfg.Auth.Mode {
	case "jwt":
		logger.Info("Using local HMAC token verification (development mode)")
		verifier = security.NewTokenManager(cfg.Auth.JWTSecret)
	default:
		verifier, err = security.NewFirebaseVerifier(ctx, cfg.Firebase)
		if err != nil {
			logger.Error("Failed to initialize Firebase auth", "error", err)
			log.Fatalf("Failed to initialize Firebase auth: %v", err)
		}
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	inviteSvc := service.NewInvitationService(
		store.InvitationRepository,
		store.UserRepository,
		emailSvc,
		cfg.Invitation.ExpiryDays,
	)
	clientSvc := service.NewClientService(store.ClientRepository)

	// Initialize HTTP handlers
	inviteHandler := httpapi.NewInvitationHandler(inviteSvc)
	clientHandler := httpapi.NewClientHandler(clientSvc)

	router := httpapi.NewRouter(verifier, inviteHandler, clientHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}

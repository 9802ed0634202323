package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/Sriyakreddy/movie-memory/pkg/auth"
	"github.com/Sriyakreddy/movie-memory/pkg/config"
	"github.com/Sriyakreddy/movie-memory/pkg/database"
	"github.com/Sriyakreddy/movie-memory/pkg/facts"
	"github.com/Sriyakreddy/movie-memory/pkg/handlers"
	"github.com/Sriyakreddy/movie-memory/pkg/llm"
	"github.com/Sriyakreddy/movie-memory/pkg/mcp"
	"github.com/Sriyakreddy/movie-memory/pkg/mcp/tools"
	"github.com/Sriyakreddy/movie-memory/pkg/middleware"
	"github.com/Sriyakreddy/movie-memory/pkg/repositories"
	"github.com/Sriyakreddy/movie-memory/pkg/retry"
	"github.com/Sriyakreddy/movie-memory/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("backend_provider", cfg.Backend.Provider),
		zap.Strings("backend_models", cfg.Backend.Models),
		zap.String("database", cfg.Database.Database))

	ctx := context.Background()

	// Database comes up on its own schedule in container environments,
	// so the first connection gets a backoff loop.
	db, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.ConnectionString(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Transient connection drops between connect and migrate get the same
	// backoff; schema errors fail immediately.
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		return runMigrations(cfg, logger)
	})
	if err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Authentication
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	defer jwksClient.Close()

	var sessionStore *auth.SessionStore
	if cfg.Auth.SessionSecret != "" {
		sessionStore = auth.NewSessionStore(cfg.Auth.SessionSecret, cfg.TLSCertPath != "")
	} else {
		logger.Warn("SESSION_SECRET not set, session cookies disabled")
	}

	authService := auth.NewAuthService(jwksClient, sessionStore, logger)
	authMiddleware := auth.NewMiddleware(authService, sessionStore, logger)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	factRepo := repositories.NewFactRepository(db)

	// Fact generation
	backendClient, err := llm.NewClient(cfg.Backend.Provider, &llm.Config{
		APIKey:  cfg.Backend.APIKey(),
		BaseURL: cfg.Backend.BaseURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create backend client", zap.Error(err))
	}

	generator := facts.NewGenerator(backendClient, facts.GeneratorConfig{
		Models:           cfg.Backend.Models,
		AttemptsPerModel: cfg.Backend.AttemptsPerModel,
		RequestTimeout:   time.Duration(cfg.Backend.RequestTimeoutSeconds) * time.Second,
	}, logger)

	// Services
	userService := services.NewUserService(userRepo, factRepo, logger)
	factService := services.NewFactService(userRepo, factRepo, generator,
		time.Duration(cfg.Facts.CacheTTLSeconds)*time.Second, logger)

	// MCP server and tools
	mcpServer := mcp.NewServer("movie-memory", cfg.Version, logger)
	tools.RegisterTools(mcpServer, &tools.Deps{
		FactService: factService,
		UserService: userService,
		Logger:      logger,
	})

	// HTTP surface
	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	meHandler := handlers.NewMeHandler(userService, logger)
	meHandler.RegisterRoutes(mux, authMiddleware)

	factHandler := handlers.NewFactHandler(factService, logger)
	factHandler.RegisterRoutes(mux, authMiddleware)

	mcpHandler := handlers.NewMCPHandler(mcpServer, logger)
	mcpHandler.RegisterRoutes(mux, authMiddleware)

	logoutHandler := handlers.NewLogoutHandler(sessionStore, logger)
	logoutHandler.RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting movie-memory",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))

	if cfg.TLSCertPath != "" && cfg.TLSKeyPath != "" {
		err = server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a development logger locally and a production logger
// everywhere else.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// runMigrations applies pending migrations through a database/sql handle,
// which golang-migrate requires.
func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger)
}

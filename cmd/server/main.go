package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"docvault/internal/config"
	"docvault/internal/handler"
	"docvault/internal/httputil"
	"docvault/internal/middleware"
	"docvault/internal/repository/postgres"
	"docvault/internal/service"
	serviceAuth "docvault/internal/service/auth"
	"docvault/internal/storage/fsblob"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create repositories
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	docRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob storage
	blobStore, err := fsblob.New(cfg.BlobDir)
	if err != nil {
		log.Fatalf("Failed to open blob store at %s: %v", cfg.BlobDir, err)
	}
	blobs := service.NewBlobCoordinator(blobStore, logger)

	// Create services
	policy := serviceAuth.NewRolePolicy(userRepo)
	userService := service.NewUserService(userRepo, docRepo, policy, blobs, logger)
	folderService := service.NewFolderService(folderRepo, docRepo, txManager, blobs, logger)
	docService := service.NewDocumentService(docRepo, folderRepo, blobs, logger)
	treeService := service.NewTreeService(folderRepo, docRepo, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(userService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	docHandler := handler.NewDocumentHandler(docService, logger)
	fileHandler := handler.NewFileHandler(docService, logger)
	treeHandler := handler.NewTreeHandler(treeService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// User management routes
	mux.HandleFunc("GET /api/users", userHandler.List)
	mux.HandleFunc("GET /api/users/{id}", userHandler.Get)
	mux.HandleFunc("PUT /api/users/{id}", userHandler.ChangeRole)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.Delete)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folderHandler.List)
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("PUT /api/folders/{id}", folderHandler.Rename)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)

	// Document routes
	mux.HandleFunc("GET /api/documents", docHandler.List)
	mux.HandleFunc("POST /api/documents/upload", docHandler.Upload)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.Get)
	mux.HandleFunc("PUT /api/documents/{id}", docHandler.Update)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.Delete)

	// Download route
	mux.HandleFunc("GET /api/files/{id}", fileHandler.Download)

	// Tree route
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)

	// Build middleware chain. Applied in reverse order (they wrap each
	// other): CORS → Recovery → Logging → Auth → Routes
	var h http.Handler = mux
	h = middleware.AuthMiddleware()(h)
	h = middleware.RequestLogging(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-User-Id"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // generous for large downloads
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

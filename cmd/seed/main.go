package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/domain/models"
	"docvault/internal/repository/postgres"
)

// seedFixture is the YAML shape of the user fixture file.
type seedFixture struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed users")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := postgres.CreateSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		log.Println("Schema setup complete (schema-only mode)")
		return
	}

	fixture, err := loadFixture(cfg.SeedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file %s: %v", cfg.SeedFile, err)
	}

	userRepo := postgres.NewUserRepository(&postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	})

	created := 0
	for _, su := range fixture.Users {
		user, err := buildUser(su)
		if err != nil {
			log.Fatalf("Invalid seed user %s: %v", su.Email, err)
		}
		if err := userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				log.Printf("Skipping %s: already exists", su.Email)
				continue
			}
			log.Fatalf("Failed to create user %s: %v", su.Email, err)
		}
		log.Printf("Created %s (%s)", user.Email, user.Role)
		created++
	}

	log.Printf("Seeding complete: %d users created, %d in fixture", created, len(fixture.Users))
}

func loadFixture(path string) (*seedFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture seedFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(fixture.Users) == 0 {
		return nil, fmt.Errorf("fixture has no users")
	}
	return &fixture, nil
}

func buildUser(su seedUser) (*models.User, error) {
	role := models.Role(su.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("role must be admin or member, got %q", su.Role)
	}
	if su.Email == "" || su.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &models.User{
		Email:        su.Email,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/complaint-desk/config"
	"github.com/oksasatya/complaint-desk/internal/application"
	"github.com/oksasatya/complaint-desk/internal/domain/apperror"
	pginfra "github.com/oksasatya/complaint-desk/internal/infrastructure/postgres"
)

// seed creates the administrator account named by ADMIN_EMAIL. Running it
// again is a no-op.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	creds := application.NewCredentialStore(pginfra.NewUserRepository(pool), cfg.BcryptCost)
	u, err := creds.Register(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	if errors.Is(err, apperror.ErrDuplicateUser) {
		fmt.Printf("admin already exists: email=%s\n", cfg.AdminEmail)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s name=%s\n", u.ID, u.Email, u.FullName)
}

package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/infrastructure/config"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/postgres"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/redis"
	"github.com/persoshop/persoshop-api/pkg/logger"
)

// Seeds the admin account. Safe to run on every deploy: an existing
// admin is left untouched unless -reset-password is given, in which
// case the password is rotated and all admin sessions revoked.
func main() {
	resetPassword := flag.Bool("reset-password", false, "rotate the admin password from ADMIN_PASSWORD and revoke sessions")
	flag.Parse()

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	if cfg.Admin.Password == "" {
		log.Fatal().Msg("ADMIN_PASSWORD is required")
	}

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	ctx := context.Background()
	users := postgres.NewUserRepository(db)

	admin, err := users.FindByEmail(ctx, cfg.Admin.Email)
	switch {
	case err == nil && !*resetPassword:
		log.Info().Str("email", admin.Email).Msg("admin already exists, nothing to do")
		return

	case err == nil && *resetPassword:
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		admin.PasswordHash = string(hash)
		if _, err := users.Update(ctx, admin); err != nil {
			log.Fatal().Err(err).Msg("update admin password")
		}

		// Old sessions must not survive a password rotation.
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed, sessions not revoked")
		}
		defer rdb.Close()
		revoker := redis.NewSessionRevoker(rdb, 30*24*time.Hour)
		if err := revoker.RevokeUser(ctx, admin.ID); err != nil {
			log.Fatal().Err(err).Msg("revoke admin sessions")
		}
		log.Info().Str("email", admin.Email).Msg("admin password rotated, sessions revoked")
		return

	case errors.Is(err, domain.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		if _, err := users.Create(ctx, &domain.User{
			Email:        cfg.Admin.Email,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
			FullName:     cfg.Admin.FullName,
		}); err != nil {
			log.Fatal().Err(err).Msg("create admin")
		}
		log.Info().Str("email", cfg.Admin.Email).Msg("admin created")

	default:
		log.Fatal().Err(err).Msg("look up admin")
	}
}

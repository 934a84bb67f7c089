// Command seed creates a login-able user. The schema is migrated first, so it
// also works against an empty database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/twofa/internal/migrations"
	"github.com/shandysiswandi/twofa/internal/pkg/hash"
	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/uid"
	"github.com/shandysiswandi/twofa/internal/twofa/entity"
	"github.com/shandysiswandi/twofa/internal/twofa/outbound/db"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		dsn      = flag.String("db", os.Getenv("DATABASE_URL"), "postgres connection string")
		email    = flag.String("email", "", "user email")
		username = flag.String("username", "", "user name shown in authenticator apps")
		password = flag.String("password", "", "plain password")
		cost     = flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
		pepper   = flag.String("pepper", os.Getenv("BCRYPT_PEPPER"), "bcrypt pepper, must match hash.bcrypt.pepper")
	)
	flag.Parse()

	if err := run(*dsn, *email, *username, *password, *cost, *pepper); err != nil {
		slog.Error("failed to seed user", "error", err)
		os.Exit(1)
	}
}

func run(dsn, email, username, password string, cost int, pepper string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if dsn == "" || email == "" || username == "" || password == "" {
		return fmt.Errorf("-db, -email, -username and -password are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	hashed, err := hash.NewBcrypt(cost, pepper).Hash(password)
	if err != nil {
		return err
	}

	snow, err := uid.NewSnowflake()
	if err != nil {
		return err
	}

	user := entity.User{
		ID:       snow.Generate(),
		Email:    email,
		Username: username,
		Password: string(hashed),
	}
	if err := db.NewDB(pool, instrument.NewNoop()).CreateUser(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	slog.Info("user seeded", "id", user.ID, "email", user.Email)
	return nil
}

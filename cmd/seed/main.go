// Command seed populates a development database with user, account, and
// session documents in the shape the external auth provider writes them.
// Prints a ready-to-use admin session cookie for exercising the admin RPC
// surface locally.
package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/service"
	"github.com/novalabs/landing-api/internal/infrastructure/config"
	mongodb "github.com/novalabs/landing-api/internal/infrastructure/db/mongo"
	"github.com/novalabs/landing-api/pkg/logger"
)

type seedUser struct {
	Name     string
	Email    string
	Role     string
	Password string
	Banned   bool
	Reason   string
}

var seedUsers = []seedUser{
	{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, Password: "admin123"},
	{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser, Password: "alice123"},
	{Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser, Password: "bob123", Banned: true, Reason: "spam"},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Service: "seed", Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	users := db.Collection("user")
	accounts := db.Collection("account")

	var adminID string
	for i, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}

		createdAt := time.Now().UTC().Add(-time.Duration(len(seedUsers)-i) * time.Hour)
		doc := map[string]any{
			"name":      su.Name,
			"email":     su.Email,
			"role":      su.Role,
			"banned":    su.Banned,
			"createdAt": createdAt,
		}
		if su.Banned {
			doc["banReason"] = su.Reason
		}

		res, err := users.InsertOne(ctx, doc)
		if err != nil {
			log.Fatal().Err(err).Str("email", su.Email).Msg("insert user")
		}
		id := objectIDHex(res)

		// Credential account document, as the auth provider stores it.
		if _, err := accounts.InsertOne(ctx, map[string]any{
			"userId":     id,
			"providerId": "credential",
			"password":   string(hash),
			"createdAt":  createdAt,
		}); err != nil {
			log.Fatal().Err(err).Str("email", su.Email).Msg("insert account")
		}

		if su.Role == domain.RoleAdmin {
			adminID = id
		}
		log.Info().Str("email", su.Email).Str("role", su.Role).Msg("seeded user")
	}

	// Issue a live admin session so the RPC surface can be exercised
	// immediately.
	sessions := mongodb.NewSessionRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	provider := service.NewSessionService(sessions, userRepo, nil, cfg.AuthSecret, log)

	token, err := provider.Issue(ctx, adminID, 7*24*time.Hour)
	if err != nil {
		log.Fatal().Err(err).Msg("issue admin session")
	}

	fmt.Printf("admin session cookie:\n%s=%s\n", cfg.SessionCookie, token)
}

func objectIDHex(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", res.InsertedID)
}

// Command tokengen mints portal tokens signed with the configured JWT key so
// the API can be exercised locally without the identity provider.
//
//	go run ./cmd/tokengen -role STAFF
//	go run ./cmd/tokengen -email a@x.com -json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	accountmodels "gatehouse/internal/account/models"
	jwttoken "gatehouse/internal/jwt_token"
	"gatehouse/internal/platform/config"
	"gatehouse/internal/seeder"
	id "gatehouse/pkg/domain"
)

type tokenOutput struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ExpiresIn string `json:"expires_in"`
}

func main() {
	accountID := flag.String("account-id", "", "Account ID (UUID). Generated if empty; the seeded staff account for STAFF/ADMIN.")
	email := flag.String("email", "", "Email claim. Defaults to a generated address.")
	role := flag.String("role", string(accountmodels.RoleUser), "Role claim: USER, RESIDENT, STAFF or ADMIN")
	ttl := flag.Duration("ttl", 0, "Token lifetime. Defaults to TOKEN_TTL.")
	asJSON := flag.Bool("json", false, "Print JSON instead of the bare token")
	flag.Parse()

	if err := run(*accountID, *email, *role, *ttl, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
}

func run(rawAccountID, email, rawRole string, ttl time.Duration, asJSON bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Server.Environment == "prod" {
		return fmt.Errorf("refusing to mint tokens with APP_ENV=prod")
	}

	role, err := accountmodels.ParseRole(rawRole)
	if err != nil {
		return fmt.Errorf("role %q: %w", rawRole, err)
	}
	if rawAccountID == "" {
		rawAccountID = uuid.NewString()
		if role.IsStaff() {
			rawAccountID = seeder.DemoStaffAccountID
		}
	}
	accountID, err := id.ParseAccountID(rawAccountID)
	if err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	if email == "" {
		email = "user-" + strings.SplitN(rawAccountID, "-", 2)[0] + "@gatehouse.local"
	}
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}

	svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, ttl)
	token, err := svc.GenerateAccessToken(context.Background(), accountID, email, string(role))
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	if !asJSON {
		fmt.Println(token)
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenOutput{
		Token:     token,
		Type:      "Bearer",
		AccountID: accountID.String(),
		Email:     email,
		Role:      string(role),
		ExpiresIn: ttl.String(),
	})
}

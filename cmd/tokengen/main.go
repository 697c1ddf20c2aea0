// tokengen mints a development access token for calling the API locally.
//
//	go run ./cmd/tokengen -user 1 -org 2
//
// Omit -org to mint a token without organization scope (the API refuses such
// tokens with ORGANIZATION_ID_REQUIRED, useful for testing that path).
package main

import (
	"flag"
	"fmt"
	"log"

	"booking-audit/backend/internal/config"
	"booking-audit/backend/internal/security"
)

func main() {
	userID := flag.Int64("user", 0, "User id to mint the token for (required)")
	orgID := flag.Int64("org", 0, "Organization id scope; omit for no org scope")
	flag.Parse()

	if *userID == 0 {
		log.Fatal("-user is required")
	}
	var org *int64
	if *orgID != 0 {
		org = orgID
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	privateKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		log.Fatalf("jwt private key: %v", err)
	}
	publicKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		log.Fatalf("jwt public key: %v", err)
	}

	tokens := security.NewTokenProvider(privateKey, publicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	token, _, expiresAt, err := tokens.IssueAccess(*userID, org)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Printf("alg:     %s\n", security.KeyAlg(publicKey))
	fmt.Printf("expires: %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Println(token)
}

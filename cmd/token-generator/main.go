// Command token-generator mints access tokens for local development, signed
// with the configured JWT secret. Without -user it mints a token for a fresh
// random participant.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/config"
	"github.com/spotly/meeting-api/internal/service/auth"
)

func main() {
	user := flag.String("user", "", "participant id to issue the token for")
	count := flag.Int("n", 1, "number of tokens to mint when -user is empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}

	var userIDs []uuid.UUID
	if *user != "" {
		id, err := uuid.Parse(*user)
		if err != nil {
			log.Fatalf("Invalid -user: %v", err)
		}
		userIDs = append(userIDs, id)
	} else {
		for i := 0; i < *count; i++ {
			userIDs = append(userIDs, uuid.New())
		}
	}

	for _, id := range userIDs {
		token, err := jwtService.GenerateToken(context.Background(), id)
		if err != nil {
			fmt.Printf("Error generating token for %s: %v\n", id, err)
			continue
		}
		fmt.Printf("User: %s\nToken: %s\n\n", id, token)
	}
}

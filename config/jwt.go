package config

import (
	"os"
	"time"
)

const JWTExpiration = 24 * time.Hour

// JWTSecret is read lazily so godotenv gets a chance to load the .env file
// before the first token is signed.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "pilinks-dev-secret-change-this-in-production"
	}
	return []byte(secret)
}

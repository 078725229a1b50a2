package config

import (
	"os"
	"strconv"
	"time"
)

// insecure placeholder carried over from the first deployment; override
// JWT_SECRET in any real environment.
const defaultJWTSecret = "eventually instead of this we will use a public key"

type Config struct {
	Port            string
	MongoURL        string
	MongoDBName     string
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	SendgridAPIKey  string
	InviteFromEmail string
}

func Load() *Config {
	return &Config{
		Port:            GetEnvAsString("PORT", "3000"),
		MongoURL:        GetEnvAsString("MONGODB_DB_URL", "mongodb://127.0.0.1/"),
		MongoDBName:     GetEnvAsString("MONGO_DB_NAME", "rikitraki"),
		JWTSecret:       GetEnvAsString("JWT_SECRET", defaultJWTSecret),
		JWTIssuer:       GetEnvAsString("JWT_ISSUER", "rikitrakiws"),
		TokenTTL:        GetEnvAsDuration("TOKEN_TTL", 72*time.Hour),
		SendgridAPIKey:  GetEnvAsString("SENDGRID_API_KEY", ""),
		InviteFromEmail: GetEnvAsString("INVITE_FROM_EMAIL", ""),
	}
}

// GetEnvAsString gets environment variable as string with default value
func GetEnvAsString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets environment variable as int with default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration gets environment variable as duration with default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package testutils

import (
	"time"

	"github.com/foodiehub/foodiehub/config"
	"golang.org/x/crypto/bcrypt"
)

const TestTokenKey = "0123456789abcdef0123456789abcdef"

func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name: "Test App",
			URL:  "http://localhost:8080",
		},
		Server: config.ServerConfig{
			Host: "localhost",
			Port: "8080",
		},
		Log: config.LogConfig{
			Level:  "error",
			Format: "json",
			Output: "stdout",
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    ":memory:",
		},
		Token: config.TokenConfig{
			Key:           TestTokenKey,
			Issuer:        "https://localhost:7081/",
			Audience:      "https://localhost:7081/",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 7 * 24 * time.Hour,
		},
		RefreshToken: config.RefreshTokenConfig{
			Retention:       24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Auth: config.AuthConfig{
			MinLength:  6,
			BcryptCost: bcrypt.MinCost,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:   false,
			Store:     "memory",
			Rate:      10,
			Period:    time.Minute,
			CountMode: config.CountFailures,
		},
		Redis: config.RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "foodiehub-test:",
		},
		Storage: config.StorageConfig{
			Driver:        "local",
			Dir:           "Images",
			PublicPath:    "/Images",
			MaxUploadSize: 10485760,
		},
	}
}

var TestPasswords = struct {
	Valid    string
	TooShort string
}{
	Valid:    "Passw0rd!",
	TooShort: "abc12",
}

var TestUsers = struct {
	Reviewer struct {
		Email    string
		Password string
	}
	Owner struct {
		Email    string
		Password string
	}
}{
	Reviewer: struct {
		Email    string
		Password string
	}{
		Email:    "alice@example.com",
		Password: "Passw0rd!",
	},
	Owner: struct {
		Email    string
		Password string
	}{
		Email:    "owner@example.com",
		Password: "0wnerPass",
	},
}

package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type CountingMode string

const (
	CountAll      CountingMode = "all"
	CountFailures CountingMode = "failures"
	CountSuccess  CountingMode = "success"
)

// TokenKeySize is the key length required by direct A256GCM encryption.
const TokenKeySize = 32

type Config struct {
	App          AppConfig          `envPrefix:"APP_"`
	Server       ServerConfig       `envPrefix:"SERVER_"`
	Log          LogConfig          `envPrefix:"LOG_"`
	Database     DatabaseConfig     `envPrefix:"DATABASE_"`
	Token        TokenConfig        `envPrefix:"TOKEN_"`
	RefreshToken RefreshTokenConfig `envPrefix:"REFRESH_TOKEN_"`
	Auth         AuthConfig         `envPrefix:"AUTH_"`
	RateLimit    RateLimitConfig    `envPrefix:"RATE_LIMIT_"`
	Redis        RedisConfig        `envPrefix:"REDIS_"`
	Storage      StorageConfig      `envPrefix:"STORAGE_"`
	UI           UIConfig           `envPrefix:"UI_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"FoodieHub API"`
	URL  string `env:"URL" envDefault:"http://localhost:8080"`
}

type ServerConfig struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	TrustedProxies []string      `env:"TRUSTED_PROXIES" envSeparator:","`
	ShutdownGrace  time.Duration `env:"SHUTDOWN_GRACE" envDefault:"10s"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"foodiehub.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
	Seed        bool   `env:"SEED" envDefault:"true"`
}

// TokenConfig holds the static key material and policy for access tokens.
type TokenConfig struct {
	Key           string        `env:"KEY"`
	Issuer        string        `env:"ISSUER" envDefault:"https://localhost:7081/"`
	Audience      string        `env:"AUDIENCE" envDefault:"https://localhost:7081/"`
	AccessExpiry  time.Duration `env:"ACCESS_EXPIRY" envDefault:"15m"`
	RefreshExpiry time.Duration `env:"REFRESH_EXPIRY" envDefault:"168h"`
}

type RefreshTokenConfig struct {
	Retention       time.Duration `env:"RETENTION" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"1h"`
}

type AuthConfig struct {
	MinLength  int `env:"MIN_LENGTH" envDefault:"6"`
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

type RateLimitConfig struct {
	Enabled   bool          `env:"ENABLED" envDefault:"true"`
	Store     string        `env:"STORE" envDefault:"memory"`
	Rate      int           `env:"RATE" envDefault:"10"`
	Period    time.Duration `env:"PERIOD" envDefault:"1m"`
	CountMode CountingMode  `env:"COUNT_MODE" envDefault:"failures"`
}

type RedisConfig struct {
	Addr         string        `env:"ADDR" envDefault:"localhost:6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB" envDefault:"0"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"10"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	Prefix       string        `env:"PREFIX" envDefault:"foodiehub:"`
}

type StorageConfig struct {
	Driver        string `env:"DRIVER" envDefault:"local"`
	Dir           string `env:"DIR" envDefault:"Images"`
	PublicPath    string `env:"PUBLIC_PATH" envDefault:"/Images"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	S3Bucket       string `env:"S3_BUCKET"`
	S3Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"S3_ENDPOINT"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
}

type UIConfig struct {
	Enabled     bool       `env:"ENABLED" envDefault:"false"`
	Dir         string     `env:"DIR" envDefault:"ui/views"`
	Extension   string     `env:"EXTENSION" envDefault:".html"`
	Development bool       `env:"DEVELOPMENT" envDefault:"false"`
	CSRF        CSRFConfig `envPrefix:"CSRF_"`
}

type CSRFConfig struct {
	Enabled        bool     `env:"ENABLED" envDefault:"true"`
	TokenLength    uint8    `env:"TOKEN_LENGTH" envDefault:"32"`
	TokenLookup    string   `env:"TOKEN_LOOKUP" envDefault:"form:_csrf"`
	CookieName     string   `env:"COOKIE_NAME" envDefault:"_csrf"`
	CookieDomain   string   `env:"COOKIE_DOMAIN"`
	CookiePath     string   `env:"COOKIE_PATH" envDefault:"/ui"`
	CookieMaxAge   int      `env:"COOKIE_MAX_AGE" envDefault:"86400"`
	CookieSecure   bool     `env:"COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool     `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite string   `env:"COOKIE_SAME_SITE" envDefault:"strict"`
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envSeparator:","`
}

func LoadConfig(cfg any) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	if c, ok := cfg.(*Config); ok {
		return c.Validate()
	}
	return nil
}

func (c *Config) Validate() error {
	if len(c.Token.Key) != TokenKeySize {
		return fmt.Errorf("token key must be exactly %d bytes, got %d", TokenKeySize, len(c.Token.Key))
	}
	if c.Token.Issuer == "" || c.Token.Audience == "" {
		return errors.New("token issuer and audience are required")
	}
	if c.Token.AccessExpiry <= 0 || c.Token.RefreshExpiry <= 0 {
		return errors.New("token expiries must be positive")
	}
	if c.RefreshToken.Retention < 0 {
		return errors.New("refresh token retention cannot be negative")
	}

	switch c.RateLimit.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported rate limit store: %s (supported: memory, redis)", c.RateLimit.Store)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Bucket == "" {
			return errors.New("s3 storage requires a bucket")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %s (supported: local, s3)", c.Storage.Driver)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	devJWTSecret = "dev-secret-change-me"
)

// Config holds every runtime setting of the auction server
type Config struct {
	// HTTP
	Port               string   `envconfig:"PORT" default:"8080"`
	GinMode            string   `envconfig:"GIN_MODE" default:"release"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	CookieSecure       bool     `envconfig:"COOKIE_SECURE" default:"false"`
	// Logging
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// DB
	DBDriver          string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN             string        `envconfig:"DB_DSN" default:"auctions.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"`
	DBMaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	SeedCategories    []string      `envconfig:"SEED_CATEGORIES"`
	// JWT
	JWTSecret string        `envconfig:"JWT_SECRET"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"auction-site"`
	// Cache
	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	BidCacheTTL   time.Duration `envconfig:"BID_CACHE_TTL" default:"30s"`
	// Auction policy
	CloseOwnerOnly bool `envconfig:"CLOSE_OWNER_ONLY" default:"true"`
}

// Load reads an optional .env file, then the process environment
func Load() (Config, error) {
	// a missing .env file is normal outside local development
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks settings that envconfig cannot express and fills dev defaults
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("config: DB_DSN must not be empty")
	}
	if c.JWTSecret == "" {
		if c.GinMode == "release" {
			return errors.New("config: JWT_SECRET is required in release mode")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

// CacheEnabled reports whether a Redis address was configured
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

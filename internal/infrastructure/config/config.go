package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

type AuthConfig struct {
	// JWTSecret signs access tokens. Empty is startup-fatal.
	JWTSecret       string        `env:"JWT_SECRET"`
	Issuer          string        `env:"JWT_ISSUER,        default=awards-api"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	ResetTokenTTL   time.Duration `env:"RESET_TOKEN_TTL,   default=1h"`
	BcryptCost      int           `env:"BCRYPT_COST,       default=10"`
	DefaultRole     string        `env:"DEFAULT_ROLE,      default=user"`
	// Public base URLs embedded in activation and reset emails.
	ActivateURL string `env:"ACTIVATE_URL, default=http://localhost:8080/auth/activate"`
	ResetURL    string `env:"RESET_URL,    default=http://localhost:8080/password-reset"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=awards_catalog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	// Addr is host:port of the outbound relay. Empty disables SMTP; emails
	// are logged instead (development mode).
	Addr string `env:"SMTP_ADDR"`
	From string `env:"SMTP_FROM, default=no-reply@premios.example"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Validate enforces startup invariants that envconfig defaults cannot express.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET must be set")
	}
	return nil
}

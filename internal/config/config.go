package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const productionStage = "production"

// DeploymentPolicy carries the environment-dependent HTTP policy: which
// origin may call the API with credentials and whether cookies require TLS.
type DeploymentPolicy struct {
	IsProduction  bool
	AllowedOrigin string
}

type Config struct {
	AppPort string
	Stage   string

	AWSRegion            string
	UserPoolID           string
	UserPoolClientID     string
	UserPoolClientSecret string

	WebsiteURL       string
	ProductionOrigin string

	ProviderTimeout time.Duration
	VerifyIDToken   bool

	RedisAddr     string
	RedisPassword string

	LoginAttemptsPerMinute int

	LogLevel string
}

// Load reads configuration from the environment, after loading a .env file
// if one exists, and validates it. A missing user pool id or client id is an
// error: the process must not start without them.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Config{
		AppPort: getEnv("APP_PORT", "8080"),
		Stage:   getEnv("SST_STAGE", "dev"),

		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		UserPoolID:           getEnv("USER_POOL_ID", ""),
		UserPoolClientID:     getEnv("USER_POOL_CLIENT_ID", ""),
		UserPoolClientSecret: getEnv("USER_POOL_CLIENT_SECRET", ""),

		WebsiteURL:       getEnv("WEBSITE_URL", "http://localhost:3000"),
		ProductionOrigin: getEnv("PRODUCTION_ORIGIN", "https://plydojo.com"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error

	cfg.ProviderTimeout, err = time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid PROVIDER_TIMEOUT format: %w", err)
	}

	cfg.VerifyIDToken, err = strconv.ParseBool(getEnv("VERIFY_ID_TOKEN", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid VERIFY_ID_TOKEN: %w", err)
	}

	cfg.LoginAttemptsPerMinute, err = strconv.Atoi(getEnv("LOGIN_ATTEMPTS_PER_MINUTE", "10"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOGIN_ATTEMPTS_PER_MINUTE: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var missing []string
	if c.UserPoolID == "" {
		missing = append(missing, "USER_POOL_ID")
	}
	if c.UserPoolClientID == "" {
		missing = append(missing, "USER_POOL_CLIENT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required cognito environment variables: %s", strings.Join(missing, ", "))
	}

	if c.ProviderTimeout <= 0 {
		return errors.New("PROVIDER_TIMEOUT must be positive")
	}

	if c.LoginAttemptsPerMinute < 0 {
		return errors.New("LOGIN_ATTEMPTS_PER_MINUTE cannot be negative")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Stage == productionStage
}

// Policy derives the deployment policy. Production pins the allowed origin
// to the production domain; other stages use the configured website URL.
func (c Config) Policy() DeploymentPolicy {
	if c.IsProduction() {
		return DeploymentPolicy{
			IsProduction:  true,
			AllowedOrigin: c.ProductionOrigin,
		}
	}
	return DeploymentPolicy{
		IsProduction:  false,
		AllowedOrigin: c.WebsiteURL,
	}
}

// getEnv reads key, preferring the contents of the file named by key_FILE.
func getEnv(key, fallback string) string {
	if path := os.Getenv(key + "_FILE"); path != "" {
		content, err := os.ReadFile(path)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

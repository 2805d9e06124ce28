package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const envFile = ".env"

var ErrMissingSecret = errors.New("missing secret")

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	Auth     Auth     `envconfig:"AUTH"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Shutdown struct {
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name        string      `envconfig:"NAME"     default:"bistro"`
	Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
	APIKey      string      `envconfig:"API_KEY"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS" default:"Authorization,Content-Type,X-API-Key"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS" default:"300"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"100"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type Cache struct {
	Redis struct {
		Primary Redis `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	TTL int `envconfig:"TTL" default:"300"`
}

type Redis struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type Auth struct {
	ResetTokenTTLSeconds int `envconfig:"RESET_TOKEN_TTL_SECONDS" default:"900"`
}

type DB struct {
	Postgres struct {
		MaxRetry       int        `envconfig:"MAX_RETRY"       default:"5"`
		RetryWaitTime  int        `envconfig:"RETRY_WAIT_TIME" default:"2"`
		MigrationTable string     `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
		AutoMigrate    bool       `envconfig:"AUTO_MIGRATE"`
		Prefix         string     `envconfig:"PREFIX"`
		Read           PostgresDB `envconfig:"READ"`
		Write          PostgresDB `envconfig:"WRITE"`
	} `envconfig:"POSTGRES"`
}

type PostgresDB struct {
	Host     string `envconfig:"HOST"     default:"localhost"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type Kafka struct {
	Brokers []string `envconfig:"BROKERS"`
	SASL    struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		OrderPlaced          string `envconfig:"ORDER_PLACED"          default:"order.placed"`
		ReservationConfirmed string `envconfig:"RESERVATION_CONFIRMED" default:"reservation.confirmed"`
		PasswordReset        string `envconfig:"PASSWORD_RESET"        default:"auth.password_reset_requested"`
	} `envconfig:"TOPICS"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		MaxUploadMB     int    `envconfig:"MAX_UPLOAD_MB" default:"50"`
	} `envconfig:"S3"`
	Razorpay struct {
		KeyID     string `envconfig:"KEY_ID"`
		KeySecret string `envconfig:"KEY_SECRET"`
		Currency  string `envconfig:"CURRENCY" default:"INR"`
	} `envconfig:"RAZORPAY"`
}

// Validate rejects configurations the API server cannot run safely with. Tooling such as the migrator skips it.
func (c *Config) Validate() error {
	secrets := []struct{ name, value string }{
		{"JWT_ACCESS_SECRET", c.JWT.AccessSecret},
		{"JWT_REFRESH_SECRET", c.JWT.RefreshSecret},
	}

	var errs []error

	for _, secret := range secrets {
		if secret.value == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingSecret, secret.name))
		}
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ"))
	}

	return errors.Join(errs...)
}

// Load reads the optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}

		log.Debug().Msg("no .env file, using process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	return &cfg, nil
}

var load = sync.OnceValues(Load)

// Get returns the process wide configuration and exits if it cannot be loaded.
func Get() *Config {
	cfg, err := load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	return cfg
}

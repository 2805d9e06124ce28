package postgres

import (
	"fmt"
	"net"
	"net/url"
	"time"

	"bistro/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" //nolint:revive
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds separate pools for the read replica and the primary.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint describes one postgres pool.
type Endpoint struct {
	Name     string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Timezone string
}

// DSN renders the endpoint as a lib/pq URL.
func (e Endpoint) DSN() string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Database,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func New(config *config.Config) *Connection {
	read, write := Endpoints(config)

	return &Connection{
		Read:  Connect(read, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: Connect(write, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

// Endpoints returns the read and write endpoints, applying the optional database name prefix.
func Endpoints(config *config.Config) (read, write Endpoint) {
	pg := config.DB.Postgres

	read = Endpoint{
		Name:     "read",
		Host:     pg.Read.Host,
		Port:     pg.Read.Port,
		Username: pg.Read.Username,
		Password: pg.Read.Password,
		Database: pg.Prefix + pg.Read.Name,
		SSLMode:  pg.Read.SSLMode,
		Timezone: pg.Read.Timezone,
	}

	write = Endpoint{
		Name:     "write",
		Host:     pg.Write.Host,
		Port:     pg.Write.Port,
		Username: pg.Write.Username,
		Password: pg.Write.Password,
		Database: pg.Prefix + pg.Write.Name,
		SSLMode:  pg.Write.SSLMode,
		Timezone: pg.Write.Timezone,
	}

	return read, write
}

// Connect retries until the database answers or maxRetry attempts have failed, then exits.
func Connect(endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Database).
		Logger()

	var lastErr error

	for attempt := range max(maxRetry, 1) {
		db, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", attempt+1).Msg("Failed connecting to database, retrying")
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}

	logger.Fatal().Err(fmt.Errorf("giving up after %d attempts: %w", max(maxRetry, 1), lastErr)).Msg("Failed connecting to database")

	return nil
}

package helper

import (
	"errors"
	"fmt"
	"net/url"

	"bistro/config"
	"bistro/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	_ "github.com/golang-migrate/migrate/v4/source/file"       //nolint:revive
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

var ErrUnknownAction = errors.New("unknown migration action")

type action struct {
	run     func(*migrate.Migrate) error
	message string
}

var actions = map[string]action{
	"up":      {run: (*migrate.Migrate).Up, message: "Database migrations completed successfully"},
	"step-up": {run: func(m *migrate.Migrate) error { return m.Steps(1) }, message: "Database migration step applied"},
	"down":    {run: func(m *migrate.Migrate) error { return m.Steps(-1) }, message: "Database migration rolled back"},
	"drop":    {run: (*migrate.Migrate).Down, message: "Database migrations rolled back successfully"},
}

// DatabaseURL is the write endpoint DSN with the configured migrations table.
func DatabaseURL(config *config.Config) (string, error) {
	_, write := postgres.Endpoints(config)

	dsn, err := url.Parse(write.DSN())
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	if table := config.DB.Postgres.MigrationTable; table != "" {
		query := dsn.Query()
		query.Set("x-migrations-table", table)
		dsn.RawQuery = query.Encode()
	}

	return dsn.String(), nil
}

// Runner applies one of up, step-up, down or drop. Having nothing to migrate is not an error.
func Runner(config *config.Config, name string) error {
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}

	databaseURL, err := DatabaseURL(config)
	if err != nil {
		return err
	}

	mig, err := migrate.New(migrationSource, databaseURL)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}
	defer mig.Close()

	if err = act.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", name, err)
	}

	version, dirty, _ := mig.Version()
	log.Info().Str("action", name).Uint("version", version).Bool("dirty", dirty).Msg(act.message)

	return nil
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}

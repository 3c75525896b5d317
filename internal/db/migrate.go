package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	log.Debugf("migrate: "+format, v...)
}

func (migrateLogger) Verbose() bool {
	return log.IsLevelEnabled(log.TraceLevel)
}

// Migrate applies all pending schema migrations. It opens its own
// database/sql connection because the migrate postgres driver needs one.
func Migrate(params NewDBPoolParams) error {
	sqlDB, err := sql.Open("postgres", params.ConnString()+"?sslmode=disable")
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Errorf("close migrations db: %s", err)
		}
	}()

	return migrateUp(sqlDB)
}

func migrateUp(sqlDB *sql.DB) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrations driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate: %w", err)
	}
	m.Log = migrateLogger{}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debugln("db schema up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migrations version: %w", err)
	}
	log.Infof("db schema migrated to version %d (dirty: %t)", version, dirty)

	return nil
}

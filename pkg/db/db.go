package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // postgres driver
	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
)

var (
	instance *sql.DB
	mu       sync.Mutex
)

// Instance returns a database instance
func Instance() *sql.DB {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		db, err := Open(config.Instance().PGDSN)
		if err != nil {
			panic(err)
		}

		instance = db
	}

	return instance
}

// Open connects to Postgres and pings it once
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// WaitReady retries Open until it succeeds or timeout elapses
func WaitReady(dsn string, timeout time.Duration) (*sql.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := Open(dsn)
		if err == nil {
			return db, nil
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("could not connect to database: %w", err)
		}

		logrus.WithError(err).Debug("database not ready")
		time.Sleep(500 * time.Millisecond)
	}
}

// Migrate runs the migrations found in migrationsPath
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
type Scanner interface {
	Scan(...interface{}) error
}

package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
	"casino-server/pkg/db"
)

func main() {
	cfg := config.Instance()

	dbh, err := db.WaitReady(cfg.PGDSN, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

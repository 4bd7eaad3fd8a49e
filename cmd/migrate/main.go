package main

import (
	"database/sql"
	"pokerroom-server/internal/config"
	"pokerroom-server/pkg/ledger"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Instance()
	if cfg.PGDSN == "" {
		logrus.Fatal("PRS_PG_DSN is not set")
	}

	db := waitForDB(cfg.PGDSN)
	defer db.Close()

	if err := ledger.Migrate(db, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	defer timeout.Stop()

	for {
		db, err := ledger.Open(dsn)
		if err == nil {
			return db
		}

		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}

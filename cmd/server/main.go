package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"pokerroom-server/internal/config"
	"pokerroom-server/internal/mux"
	"pokerroom-server/pkg/handeval"
	"pokerroom-server/pkg/ledger"
	"pokerroom-server/pkg/room"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":3000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	ledgerSvc, err := setupLedger(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not set up the hand ledger")
	}
	defer ledgerSvc.Close()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), cfg.TableOptions(), handeval.New())
	pitBoss.OnHandEnd(ledger.Hook(logrus.StandardLogger(), ledgerSvc, cfg.LedgerTimeout()))

	// the poker room has no credentials, any origin may connect
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, cfg.DefaultRoom))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("could not shut down cleanly")
	}

	pitBoss.EndShift()
}

// setupLedger runs the migrations and connects the ledger when a DSN is configured
func setupLedger(cfg config.Config) (ledger.Service, error) {
	if cfg.PGDSN == "" {
		logrus.Info("no database configured, hands will not be recorded")
		return ledger.New("")
	}

	db, err := ledger.Open(cfg.PGDSN)
	if err != nil {
		return nil, err
	}

	if err := ledger.Migrate(db, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	return ledger.NewPostgres(db), nil
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(config.Instance().Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/handlers"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
	"casino-server/internal/jwt"
	"casino-server/internal/mux"
	"casino-server/pkg/db"
	"casino-server/pkg/events"
	"casino-server/pkg/history"
	"casino-server/pkg/room"
	"casino-server/pkg/room/gamefactory"
	"casino-server/pkg/wallet"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()
	setupLogger()
	cfg := config.Instance()

	// fail fast
	if err := jwt.LoadKeys(); err != nil {
		logrus.WithError(err).Fatal("could not load jwt keys")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := historyStore(cfg)
	publisher := events.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Channel)
	defer publisher.Close()

	node, err := snowflake.NewNode(cfg.History.Node)
	if err != nil {
		logrus.WithError(err).Fatal("could not create round id generator")
	}

	pitBoss, err := room.NewPitBoss(room.Options{
		Games:     gamefactory.NewRegistry(gamefactory.SettingsFromConfig(cfg)),
		History:   store,
		Publisher: publisher,
		Node:      node,
		Logger:    logrus.StandardLogger(),
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not create pit boss")
	}
	pitBoss.StartShift(ctx, time.Minute, cfg.RoomIdleTimeout)
	defer pitBoss.Close()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listen := cfg.Addr
	if *addr != "" {
		listen = *addr
	}

	srv := &http.Server{
		Addr:         listen,
		Handler:      loggingHandler(c.Handler(gzipHandler(mux.NewMux(Version, pitBoss, walletProvider(cfg), store)))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func historyStore(cfg config.Config) history.Store {
	if cfg.History.Mode != config.HistoryPostgres {
		logrus.Warn("round history is kept in memory")
		return history.NewMemory()
	}

	dbh, err := db.WaitReady(cfg.PGDSN, 10*time.Second)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to database")
	}

	if err := db.Migrate(dbh, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	return history.NewPostgres(dbh)
}

func walletProvider(cfg config.Config) wallet.Provider {
	if cfg.Wallet.Mode == config.WalletLedger {
		logrus.WithField("url", cfg.Wallet.LedgerURL).Info("using ledger wallets")
		return wallet.LedgerProvider{
			Client:  &http.Client{Timeout: cfg.Wallet.Timeout},
			BaseURL: cfg.Wallet.LedgerURL,
		}
	}

	logrus.WithField("startingBalance", cfg.Wallet.StartingBalance).Warn("using in-memory wallets")
	return wallet.NewMemoryBank(cfg.Wallet.StartingBalance)
}

// gzipHandler compresses JSON responses, websocket upgrades pass through untouched
func gzipHandler(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			next.ServeHTTP(w, r)
			return
		}

		gz.ServeHTTP(w, r)
	})
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	cfg := config.Instance().Log
	if lvl := cfg.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Format) == "json" || strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

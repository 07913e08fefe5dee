package config

import (
	"errors"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"casino-server/internal/util"
)

// Wallet modes
const (
	WalletMemory = "memory"
	WalletLedger = "ledger"
)

// History modes
const (
	HistoryMemory   = "memory"
	HistoryPostgres = "postgres"
)

// Config provides configuration for the casino server
type Config struct {
	loaded bool

	Addr           string `yaml:"addr" envconfig:"addr"`
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`

	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`

	Wallet struct {
		Mode            string        `yaml:"mode" envconfig:"mode"`
		LedgerURL       string        `yaml:"ledgerUrl" envconfig:"ledger_url"`
		Timeout         time.Duration `yaml:"timeout" envconfig:"timeout"`
		StartingBalance int           `yaml:"startingBalance" envconfig:"starting_balance"`
	} `yaml:"wallet"`

	History struct {
		Mode string `yaml:"mode" envconfig:"mode"`
		Node int64  `yaml:"node" envconfig:"node"`
	} `yaml:"history"`

	Redis struct {
		Addr    string `yaml:"addr" envconfig:"addr"`
		Channel string `yaml:"channel" envconfig:"channel"`
	} `yaml:"redis"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors"`

	Games struct {
		MinBet        int `yaml:"minBet" envconfig:"min_bet"`
		MaxBet        int `yaml:"maxBet" envconfig:"max_bet"`
		SlotsSpinCost int `yaml:"slotsSpinCost" envconfig:"slots_spin_cost"`
		AppleLevels   int `yaml:"appleLevels" envconfig:"apple_levels"`
	} `yaml:"games"`

	RoomIdleTimeout time.Duration `yaml:"roomIdleTimeout" envconfig:"room_idle_timeout"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	c := Config{
		Addr:            ":5000",
		PGDSN:           "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath:  "./sql",
		RoomIdleTimeout: 30 * time.Minute,
	}

	c.Log.Level = "info"
	c.Log.Format = "text"
	c.JWT.PublicKey = ".jwt/public.pem"
	c.JWT.PrivateKey = ".jwt/private.key"
	c.Wallet.Mode = WalletMemory
	c.Wallet.LedgerURL = "http://localhost:8080"
	c.Wallet.Timeout = 5 * time.Second
	c.Wallet.StartingBalance = 1000
	c.History.Mode = HistoryMemory
	c.History.Node = 1
	c.Redis.Channel = "casino:rounds"
	c.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	c.Games.MinBet = 1
	c.Games.MaxBet = 1000
	c.Games.SlotsSpinCost = 10
	c.Games.AppleLevels = 8

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is not an error, the defaults and environment are used instead
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("CASINO_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("casino", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// Validate checks the values that have a fixed set of choices
func (c Config) Validate() error {
	switch c.Wallet.Mode {
	case WalletMemory, WalletLedger:
	default:
		return errors.New("wallet.mode must be memory or ledger")
	}

	switch c.History.Mode {
	case HistoryMemory, HistoryPostgres:
	default:
		return errors.New("history.mode must be memory or postgres")
	}

	if c.Games.MinBet < 1 || c.Games.MaxBet < c.Games.MinBet {
		return errors.New("games.minBet must be at least 1 and no more than games.maxBet")
	}

	return nil
}

package config

import (
	"os"
	"pokerroom-server/internal/util"
	"pokerroom-server/pkg/table"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the poker room server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		Format            string `yaml:"format" envconfig:"format"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	PGDSN                string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath       string `yaml:"migrationsPath" envconfig:"migrations_path"`
	LedgerTimeoutSeconds int    `yaml:"ledgerTimeoutSeconds" envconfig:"ledger_timeout_seconds"`
	DefaultRoom          string `yaml:"defaultRoom" envconfig:"default_room"`
	Table                struct {
		MaxSeats                   int `yaml:"maxSeats" envconfig:"max_seats"`
		StartingStack              int `yaml:"startingStack" envconfig:"starting_stack"`
		SmallBlind                 int `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind                   int `yaml:"bigBlind" envconfig:"big_blind"`
		TurnTimeoutSeconds         int `yaml:"turnTimeoutSeconds" envconfig:"turn_timeout_seconds"`
		DisconnectRetentionSeconds int `yaml:"disconnectRetentionSeconds" envconfig:"disconnect_retention_seconds"`
		NextHandDelaySeconds       int `yaml:"nextHandDelaySeconds" envconfig:"next_hand_delay_seconds"`
	} `yaml:"table"`
}

var config Config

// DefaultConfig returns the configuration used when no file or environment overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.MigrationsPath = "./sql"
	cfg.LedgerTimeoutSeconds = 5
	cfg.DefaultRoom = "room1"

	opts := table.DefaultOptions()
	cfg.Table.MaxSeats = opts.MaxSeats
	cfg.Table.StartingStack = opts.StartingStack
	cfg.Table.SmallBlind = opts.SmallBlind
	cfg.Table.BigBlind = opts.BigBlind
	cfg.Table.TurnTimeoutSeconds = int(opts.TurnTimeout / time.Second)
	cfg.Table.DisconnectRetentionSeconds = int(opts.DisconnectRetention / time.Second)
	cfg.Table.NextHandDelaySeconds = int(opts.NextHandDelay / time.Second)

	return cfg
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
// A missing config file is not an error, the defaults are used instead.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("PRS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("prs", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// TableOptions converts the table section into options for new tables
func (c Config) TableOptions() table.Options {
	return table.Options{
		MaxSeats:            c.Table.MaxSeats,
		StartingStack:       c.Table.StartingStack,
		SmallBlind:          c.Table.SmallBlind,
		BigBlind:            c.Table.BigBlind,
		TurnTimeout:         time.Duration(c.Table.TurnTimeoutSeconds) * time.Second,
		DisconnectRetention: time.Duration(c.Table.DisconnectRetentionSeconds) * time.Second,
		NextHandDelay:       time.Duration(c.Table.NextHandDelaySeconds) * time.Second,
	}
}

// LedgerTimeout is how long a single hand may take to record
func (c Config) LedgerTimeout() time.Duration {
	return time.Duration(c.LedgerTimeoutSeconds) * time.Second
}

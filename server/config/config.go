package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/btcq-org/bounty/app"
	"github.com/btcq-org/bounty/common"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. BOUNTYD_HOME.
	EnvPrefix = "BOUNTYD"

	configFileName = "config"
	configFileType = "json"
	dbName         = "bounty"
)

// Viper keys, shared with the command line flags.
const (
	KeyHome              = "home"
	KeyDBBackend         = "db_backend"
	KeyChainID           = "chain_id"
	KeyHTTPListenAddress = "http_listen_address"
	KeyLogLevel          = "log_level"
	KeyInvariantCheck    = "invariant_check"
	KeyDenom             = "denom"
	KeyFaucet            = "faucet"
)

type Config struct {
	Home              string `mapstructure:"home" json:"home"`
	DBBackend         string `mapstructure:"db_backend" json:"db_backend"`
	ChainID           string `mapstructure:"chain_id" json:"chain_id"`
	HTTPListenAddress string `mapstructure:"http_listen_address" json:"http_listen_address"`
	LogLevel          string `mapstructure:"log_level" json:"log_level"`
	InvariantCheck    bool   `mapstructure:"invariant_check" json:"invariant_check"`
	Denom             string `mapstructure:"denom" json:"denom"`
	// Faucet exposes POST /fund on the HTTP server. Development only.
	Faucet            bool   `mapstructure:"faucet" json:"faucet"`
}

func DefaultConfig() *Config {
	return &Config{
		Home:              ".bountyd",
		DBBackend:         string(dbm.GoLevelDBBackend),
		ChainID:           app.DefaultChainID,
		HTTPListenAddress: "127.0.0.1:1317",
		LogLevel:          zerolog.InfoLevel.String(),
		InvariantCheck:    true,
		Denom:             common.DefaultDenom,
		Faucet:            false,
	}
}

// SetDefaults registers every key on v so environment overrides apply even
// when no config file sets them.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault(KeyHome, def.Home)
	v.SetDefault(KeyDBBackend, def.DBBackend)
	v.SetDefault(KeyChainID, def.ChainID)
	v.SetDefault(KeyHTTPListenAddress, def.HTTPListenAddress)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyInvariantCheck, def.InvariantCheck)
	v.SetDefault(KeyDenom, def.Denom)
	v.SetDefault(KeyFaucet, def.Faucet)
}

// GetConfig resolves the configuration from, in increasing precedence, the
// defaults, <home>/config.json, BOUNTYD_* environment variables and flags
// bound to v.
func GetConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(v.GetString(KeyHome))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home cannot be empty")
	}
	if c.ChainID == "" {
		return fmt.Errorf("chain_id cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	switch dbm.BackendType(c.DBBackend) {
	case dbm.GoLevelDBBackend, dbm.MemDBBackend:
	default:
		return fmt.Errorf("unsupported db_backend %q", c.DBBackend)
	}
	return nil
}

// DataDir is where the ledger database lives.
func (c Config) DataDir() string {
	return filepath.Join(c.Home, "data")
}

// ConfigFile is the path written by WriteConfigFile.
func (c Config) ConfigFile() string {
	return filepath.Join(c.Home, configFileName+"."+configFileType)
}

// WriteConfigFile persists c under its home directory.
func (c Config) WriteConfigFile() error {
	if err := os.MkdirAll(c.Home, 0o755); err != nil {
		return fmt.Errorf("failed to create home directory: %w", err)
	}
	bz, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.ConfigFile(), bz, 0o644)
}

// OpenDB opens the configured database backend.
func (c Config) OpenDB() (dbm.DB, error) {
	if err := os.MkdirAll(c.DataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := dbm.NewDB(dbName, dbm.BackendType(c.DBBackend), c.DataDir())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", c.DBBackend, err)
	}
	return db, nil
}

// Logger returns the ledger logger at the configured level.
func (c Config) Logger() (log.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(os.Stderr, log.LevelOption(level)), nil
}

// AppOptions maps the configuration onto host options.
func (c Config) AppOptions() []app.Option {
	return []app.Option{
		app.WithChainID(c.ChainID),
		app.WithInvariantCheck(c.InvariantCheck),
	}
}

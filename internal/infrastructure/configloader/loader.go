package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// NetworkNodeConfig overrides the RPC endpoints of a built-in network.
type NetworkNodeConfig struct {
	Network         string   `yaml:"network"`
	RPCURL          string   `yaml:"rpcURL"`
	FallbackRPCURLs []string `yaml:"fallbackRpcURLs"`
}

type TokensConfig struct {
	Directory string `yaml:"directory"`
}

// BalanceServiceConfig configures where balances come from.
type BalanceServiceConfig struct {
	Source                 string `yaml:"source"` // api or rpc
	BaseURL                string `yaml:"baseURL"`
	RequestTimeoutMillis   int64  `yaml:"requestTimeoutMillis"`
	RefreshIntervalSeconds int    `yaml:"refreshIntervalSeconds"`
	RateLimit              int    `yaml:"rateLimit"` // requests per second
	BurstLimit             int    `yaml:"burstLimit"`
	RPCCallTimeoutSeconds  int    `yaml:"rpcCallTimeoutSeconds"`
}

type PriceServiceConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	CacheTTLSeconds      int    `yaml:"cacheTTLSeconds"`
	MaxIDsPerRequest     int    `yaml:"maxIdsPerRequest"`
}

// WalletConfig selects the wallet capability backend.
type WalletConfig struct {
	Mode                 string `yaml:"mode"` // rpc or simulated
	Endpoint             string `yaml:"endpoint"`
	Method               string `yaml:"method"`
	APIKey               string `yaml:"apiKey"`
	SubmitTimeoutSeconds int    `yaml:"submitTimeoutSeconds"`
	SimulatedLatencyMs   int    `yaml:"simulatedLatencyMs"`
}

type AccountConfig struct {
	SmartAccountAddress string `yaml:"smartAccountAddress"`
	OwnerAddress        string `yaml:"ownerAddress"`
}

type SettingsConfig struct {
	File string `yaml:"file"` // empty keeps settings in memory
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type MockPricesConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Logging        LoggingConfig        `yaml:"logging"`
	Networks       []NetworkNodeConfig  `yaml:"networks"`
	Tokens         TokensConfig         `yaml:"tokens"`
	BalanceService BalanceServiceConfig `yaml:"balanceService"`
	PriceService   PriceServiceConfig   `yaml:"priceService"`
	Wallet         WalletConfig         `yaml:"wallet"`
	Account        AccountConfig        `yaml:"account"`
	Settings       SettingsConfig       `yaml:"settings"`
	CORS           CORSConfig           `yaml:"cors"`
	MockPrices     MockPricesConfig     `yaml:"mockPrices"`
}

// envOverrides are applied on top of the YAML file when set.
type envOverrides struct {
	ServerPort          string `env:"PLAYGROUND_PORT"`
	LogLevel            string `env:"PLAYGROUND_LOG_LEVEL"`
	BalanceBaseURL      string `env:"PLAYGROUND_BALANCE_URL"`
	PriceBaseURL        string `env:"PLAYGROUND_PRICE_URL"`
	WalletEndpoint      string `env:"PLAYGROUND_WALLET_ENDPOINT"`
	WalletAPIKey        string `env:"PLAYGROUND_WALLET_API_KEY"`
	SmartAccountAddress string `env:"PLAYGROUND_SMART_ACCOUNT"`
	OwnerAddress        string `env:"PLAYGROUND_OWNER"`
}

// Load reads the YAML configuration file, applies environment overrides and defaults.
// A missing file is not an error; defaults and environment are used instead.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults", path)
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf(".env file not loaded: %v", err)
	}

	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, o.ServerPort)
	set(&cfg.Logging.Level, o.LogLevel)
	set(&cfg.BalanceService.BaseURL, o.BalanceBaseURL)
	set(&cfg.PriceService.BaseURL, o.PriceBaseURL)
	set(&cfg.Wallet.Endpoint, o.WalletEndpoint)
	set(&cfg.Wallet.APIKey, o.WalletAPIKey)
	set(&cfg.Account.SmartAccountAddress, o.SmartAccountAddress)
	set(&cfg.Account.OwnerAddress, o.OwnerAddress)
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 90
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.BalanceService.Source == "" {
		cfg.BalanceService.Source = "api"
	}
	if cfg.BalanceService.BaseURL == "" {
		cfg.BalanceService.BaseURL = "http://localhost:3000"
		logrus.Infof("BalanceService.BaseURL not set, defaulting to %s", cfg.BalanceService.BaseURL)
	}
	if cfg.BalanceService.RequestTimeoutMillis <= 0 {
		cfg.BalanceService.RequestTimeoutMillis = 10000
	}
	if cfg.BalanceService.RefreshIntervalSeconds <= 0 {
		cfg.BalanceService.RefreshIntervalSeconds = 30
	}
	if cfg.BalanceService.RateLimit <= 0 {
		cfg.BalanceService.RateLimit = 5
	}
	if cfg.BalanceService.BurstLimit <= 0 {
		cfg.BalanceService.BurstLimit = cfg.BalanceService.RateLimit
	}
	if cfg.BalanceService.RPCCallTimeoutSeconds <= 0 {
		cfg.BalanceService.RPCCallTimeoutSeconds = 10
	}

	if cfg.PriceService.BaseURL == "" {
		cfg.PriceService.BaseURL = cfg.BalanceService.BaseURL
		logrus.Infof("PriceService.BaseURL not set, defaulting to %s", cfg.PriceService.BaseURL)
	}
	if cfg.PriceService.RequestTimeoutMillis <= 0 {
		cfg.PriceService.RequestTimeoutMillis = 10000
	}
	if cfg.PriceService.CacheTTLSeconds <= 0 {
		cfg.PriceService.CacheTTLSeconds = 60
	}
	if cfg.PriceService.MaxIDsPerRequest <= 0 {
		cfg.PriceService.MaxIDsPerRequest = 50
	}

	if cfg.Wallet.Mode == "" {
		cfg.Wallet.Mode = "simulated"
	}
	if cfg.Wallet.Method == "" {
		cfg.Wallet.Method = "wallet_sendUserOperation"
	}
	if cfg.Wallet.SubmitTimeoutSeconds <= 0 {
		cfg.Wallet.SubmitTimeoutSeconds = 60
	}
	if cfg.Wallet.SimulatedLatencyMs < 0 {
		cfg.Wallet.SimulatedLatencyMs = 0
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate reports configuration values that cannot work.
func (c *Config) Validate() error {
	switch c.BalanceService.Source {
	case "api", "rpc":
	default:
		return fmt.Errorf("balanceService.source must be api or rpc, got %q", c.BalanceService.Source)
	}
	switch c.Wallet.Mode {
	case "rpc":
		if c.Wallet.Endpoint == "" {
			return errors.New("wallet.endpoint is required when wallet.mode is rpc")
		}
	case "simulated":
	default:
		return fmt.Errorf("wallet.mode must be rpc or simulated, got %q", c.Wallet.Mode)
	}
	return nil
}

func (c BalanceServiceConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

func (c BalanceServiceConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

func (c PriceServiceConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMillis) * time.Millisecond
}

func (c PriceServiceConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c WalletConfig) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}

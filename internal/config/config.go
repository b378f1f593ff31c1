package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

// MoralisConfig holds streams-provider configuration
type MoralisConfig struct {
	// APIKey authenticates against both the streams and the token price APIs
	APIKey string `mapstructure:"api_key"`
	// StreamsURL is the streams management API base URL
	StreamsURL string `mapstructure:"streams_url"`
	// APIURL is the deep-index API base URL used for price lookups
	APIURL string `mapstructure:"api_url"`
	// ChainID is the chain streams are created for (hex, e.g. "0x1")
	ChainID string `mapstructure:"chain_id"`
	// CallbackBaseURL is the publicly reachable base URL webhooks are
	// delivered to; subscription creation fails loudly when unset
	CallbackBaseURL string `mapstructure:"callback_base_url"`
	// WebhookSecret verifies inbound webhook signatures when set
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// ExchangeConfig holds exchange REST client configuration
type ExchangeConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	// QuoteAsset is the quote currency markets are resolved against
	QuoteAsset string `mapstructure:"quote_asset"`
	// TradeFraction is the fraction of the transfer's USD value sold on trigger
	TradeFraction float64 `mapstructure:"trade_fraction"`
}

// WatchConfig holds monitoring defaults
type WatchConfig struct {
	// DefaultThresholdUSD applies when a watch command names no threshold
	DefaultThresholdUSD float64 `mapstructure:"default_threshold_usd"`
}

// Config holds configuration for the sentry service
type Config struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Telegram   TelegramConfig `mapstructure:"telegram"`
	Moralis    MoralisConfig  `mapstructure:"moralis"`
	Exchange   ExchangeConfig `mapstructure:"exchange"`
	Watch      WatchConfig    `mapstructure:"watch"`
}

// Load loads the service configuration from config file and environment
func Load(configFile string, envPath string) (*Config, error) {
	v := configureViper("sentry", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("moralis.streams_url", "https://api.moralis-streams.com")
	v.SetDefault("moralis.api_url", "https://deep-index.moralis.io/api/v2.2")
	v.SetDefault("moralis.chain_id", "0x1")
	v.SetDefault("exchange.base_url", "https://api.binance.com")
	v.SetDefault("exchange.quote_asset", "USDT")
	v.SetDefault("exchange.trade_fraction", 0.01)
	v.SetDefault("watch.default_threshold_usd", 1000)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks required credentials. Missing required config is fatal at
// startup; optional config degrades at the component that needs it.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Moralis.APIKey == "" {
		return errors.New("moralis.api_key is required")
	}
	if c.Exchange.TradeFraction < 0 || c.Exchange.TradeFraction > 1 {
		return fmt.Errorf("exchange.trade_fraction must be within [0, 1], got %v", c.Exchange.TradeFraction)
	}
	if c.Watch.DefaultThresholdUSD < 0 {
		return fmt.Errorf("watch.default_threshold_usd must be non-negative, got %v", c.Watch.DefaultThresholdUSD)
	}
	return nil
}

func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("WHALE_SENTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Telegram
		"telegram.bot_token",
		// Moralis
		"moralis.api_key",
		"moralis.streams_url",
		"moralis.api_url",
		"moralis.chain_id",
		"moralis.callback_base_url",
		"moralis.webhook_secret",
		// Exchange
		"exchange.base_url",
		"exchange.api_key",
		"exchange.api_secret",
		"exchange.quote_asset",
		"exchange.trade_fraction",
		// Watch
		"watch.default_threshold_usd",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

package config

import (
	"fmt"
	"time"

	"github.com/gosidekick/goconfig"
)

const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultReadTimeout    = 10 * time.Second
)

type Configs struct {
	ApplicationConfig ApplicationConfig
	ServerConfig      ServerConfig
}

type ApplicationConfig struct {
	LogLevel         string        `cfg:"log_level" cfgDefault:"debug"`
	TelegramBaseURL  string        `cfg:"telegram_base_url" cfgDefault:"https://api.telegram.org"`
	TelegramBotToken string        `cfg:"telegram_bot_token" cfgRequired:"true"`
	RequestTimeout   time.Duration `cfg:"telegram_request_timeout"`
	TargetsPath      string        `cfg:"targets_path"`
	DispatchDBPath   string        `cfg:"dispatch_db_path" cfgDefault:"data/dispatches.db"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int           `cfg:"port" cfgDefault:"3377"`
	ReadTimeout  time.Duration `cfg:"read_timeout"`
	WriteTimeout time.Duration `cfg:"write_timeout"`
}

// LoadConfig loads configuration from environment variables
// and do validations to them
func LoadConfig() (*Configs, error) {
	var (
		appCfg    ApplicationConfig
		serverCfg ServerConfig
	)
	err := goconfig.Parse(&appCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse application config: %w", err)
	}
	err = goconfig.Parse(&serverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	cfgs := &Configs{
		ApplicationConfig: appCfg,
		ServerConfig:      serverCfg,
	}
	cfgs.applyDefaults()

	return cfgs, nil
}

// applyDefaults fills timeouts left unset in the environment
func (c *Configs) applyDefaults() {
	if c.ApplicationConfig.RequestTimeout <= 0 {
		c.ApplicationConfig.RequestTimeout = DefaultRequestTimeout
	}
	if c.ServerConfig.ReadTimeout <= 0 {
		c.ServerConfig.ReadTimeout = DefaultReadTimeout
	}
	// Must outlive a full Telegram round trip.
	if c.ServerConfig.WriteTimeout <= c.ApplicationConfig.RequestTimeout {
		c.ServerConfig.WriteTimeout = c.ApplicationConfig.RequestTimeout + DefaultReadTimeout
	}
}

// Addr returns the listen address for the HTTP server
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

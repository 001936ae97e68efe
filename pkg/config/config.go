package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	FxAPI     FxAPIConfig     `yaml:"fx_api"`
	Intake    IntakeConfig    `yaml:"intake"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	Environment   string `yaml:"environment"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            string `yaml:"port"`
	User            string `yaml:"user"`
	DBName          string `yaml:"name"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"ssl_mode"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	MigrationsDir   string `yaml:"migrations_dir"`
}

type FxAPIConfig struct {
	BaseURL       string `yaml:"base_url"`
	AccessKey     string `yaml:"access_key"`
	BasisCurrency string `yaml:"basis_currency"`
	Timeout       int    `yaml:"timeout"`
}

// IntakeConfig carries the settlement policy: the currency payouts settle in,
// the flat cross-border fees, and the server-side currency allow-list.
type IntakeConfig struct {
	SettlementCurrency  string   `yaml:"settlement_currency"`
	FeeTransfer         float64  `yaml:"fee_transfer"`
	FeePlatform         float64  `yaml:"fee_platform"`
	AllowedCurrencies   []string `yaml:"allowed_currencies"`
	DefaultHandleSuffix string   `yaml:"default_handle_suffix"`
}

type WebSocketConfig struct {
	ReadBufferSize  int  `yaml:"read_buffer_size"`
	WriteBufferSize int  `yaml:"write_buffer_size"`
	CheckOrigin     bool `yaml:"check_origin"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	TimeFormat string `yaml:"time_format"`
	Pretty     bool   `yaml:"pretty"`
}

func Load() (*Config, error) {
	// .env is optional; config.yaml is not.
	_ = godotenv.Load()

	var config Config
	configData, err := os.ReadFile("./config.yaml")
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(configData, &config); err != nil {
		return nil, err
	}

	config.applyEnvOverrides()

	return &config, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		c.Server.PublicBaseURL = v
	}
	if v := os.Getenv("FX_API_KEY"); v != "" {
		c.FxAPI.AccessKey = v
	}
	if v := os.Getenv("CURRENCY_ALLOWLIST"); v != "" {
		var allowed []string
		for _, code := range strings.Split(v, ",") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				allowed = append(allowed, code)
			}
		}
		if len(allowed) > 0 {
			c.Intake.AllowedCurrencies = allowed
		}
	}
}

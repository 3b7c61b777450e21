package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload" // loads ./.env into the environment when present
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

const envPrefix = "RETAIL_"

// Config holds application configuration loaded from environment variables.
// Keys are RETAIL_<SECTION>_<FIELD>, e.g. RETAIL_DATABASE_HOST.
type Config struct {
	Database Database `koanf:"database" validate:"required"`
	Log      Log      `koanf:"log" validate:"required"`
	Report   Report   `koanf:"report" validate:"required"`
}

// Database selects the store driver and its connection options.
type Database struct {
	Driver   string `koanf:"driver" validate:"required,oneof=sqlite postgres"`
	Path     string `koanf:"path" validate:"required_if=Driver sqlite"`
	Host     string `koanf:"host" validate:"required_if=Driver postgres"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	User     string `koanf:"user" validate:"required_if=Driver postgres"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Driver postgres"`
	SSLMode  string `koanf:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

// Log configures the process logger.
type Log struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=console json"`
}

// Report carries the parameters of the parameterised reports.
type Report struct {
	OrderID         int64  `koanf:"order_id" validate:"gt=0"`
	Threshold       string `koanf:"threshold" validate:"required,numeric"`
	ContinueOnError bool   `koanf:"continue_on_error"`
}

// ThresholdDecimal parses the high-spender threshold.
func (r Report) ThresholdDecimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.Threshold)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse threshold %q: %w", r.Threshold, err)
	}
	return d, nil
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	return Config{
		Database: Database{
			Driver:  "sqlite",
			Path:    "retail.db",
			Port:    5432,
			Name:    "retail_store",
			SSLMode: "disable",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
		Report: Report{
			OrderID:   1,
			Threshold: "1000",
		},
	}
}

// Load reads configuration from the environment on top of Default and
// validates the result. Empty variables are treated as unset.
func Load() (Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKey(key), value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// envKey maps RETAIL_DATABASE_SSL_MODE to database.ssl_mode.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
}

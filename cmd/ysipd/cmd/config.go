package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ysip-labs/ysip/api"
	"github.com/ysip-labs/ysip/app"
)

// EnvPrefix prefixes environment overrides, e.g. YSIP_API_ADDRESS.
const EnvPrefix = "YSIP"

// Config is the content of <home>/config/app.toml.
type Config struct {
	ChainID   string
	LogLevel  string
	LogFormat string

	API       APIConfig
	Telemetry app.TelemetryConfig
}

// APIConfig configures the REST server.
type APIConfig struct {
	Address        string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// DefaultConfig returns the configuration written by init.
func DefaultConfig() Config {
	apiDefaults := api.DefaultConfig()
	return Config{
		ChainID:   "ysip-local-1",
		LogLevel:  "info",
		LogFormat: "plain",
		API: APIConfig{
			Address:        apiDefaults.Address,
			CORSOrigins:    apiDefaults.CORSOrigins,
			RateLimitRPS:   apiDefaults.RateLimitRPS,
			RateLimitBurst: apiDefaults.RateLimitBurst,
		},
		Telemetry: app.TelemetryConfig{
			Enabled:           false,
			PrometheusEnabled: true,
			SampleRate:        1.0,
		},
	}
}

// ConfigPath returns the path of app.toml under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("chain-id", def.ChainID)
	v.SetDefault("log.level", def.LogLevel)
	v.SetDefault("log.format", def.LogFormat)
	v.SetDefault("api.address", def.API.Address)
	v.SetDefault("api.cors-origins", def.API.CORSOrigins)
	v.SetDefault("api.rate-limit", def.API.RateLimitRPS)
	v.SetDefault("api.rate-burst", def.API.RateLimitBurst)
	v.SetDefault("telemetry.enabled", def.Telemetry.Enabled)
	v.SetDefault("telemetry.otlp-endpoint", def.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.prometheus", def.Telemetry.PrometheusEnabled)
	v.SetDefault("telemetry.sample-rate", def.Telemetry.SampleRate)
	return v
}

// LoadConfig reads app.toml under home, applies YSIP_* environment variables
// and then the flags that were set on the command line.
func LoadConfig(home string, flags *pflag.FlagSet) (Config, error) {
	v := newViper()
	v.SetConfigFile(ConfigPath(home))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", ConfigPath(home), err)
		}
	}

	if flags != nil {
		for key, name := range map[string]string{
			"chain-id":    FlagChainID,
			"log.level":   FlagLogLevel,
			"log.format":  FlagLogFormat,
			"api.address": FlagAPIAddress,
		} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	return configFromViper(v)
}

// configFromViper normalizes values that may arrive as strings from the
// environment.
func configFromViper(v *viper.Viper) (Config, error) {
	rate, err := cast.ToFloat64E(v.Get("api.rate-limit"))
	if err != nil {
		return Config{}, fmt.Errorf("api.rate-limit: %w", err)
	}
	burst, err := cast.ToIntE(v.Get("api.rate-burst"))
	if err != nil {
		return Config{}, fmt.Errorf("api.rate-burst: %w", err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get("telemetry.sample-rate"))
	if err != nil {
		return Config{}, fmt.Errorf("telemetry.sample-rate: %w", err)
	}
	enabled, err := cast.ToBoolE(v.Get("telemetry.enabled"))
	if err != nil {
		return Config{}, fmt.Errorf("telemetry.enabled: %w", err)
	}
	promEnabled, err := cast.ToBoolE(v.Get("telemetry.prometheus"))
	if err != nil {
		return Config{}, fmt.Errorf("telemetry.prometheus: %w", err)
	}

	cfg := Config{
		ChainID:   cast.ToString(v.Get("chain-id")),
		LogLevel:  cast.ToString(v.Get("log.level")),
		LogFormat: cast.ToString(v.Get("log.format")),
		API: APIConfig{
			Address:        cast.ToString(v.Get("api.address")),
			CORSOrigins:    splitList(v.Get("api.cors-origins")),
			RateLimitRPS:   rate,
			RateLimitBurst: burst,
		},
		Telemetry: app.TelemetryConfig{
			Enabled:           enabled,
			OTLPEndpoint:      cast.ToString(v.Get("telemetry.otlp-endpoint")),
			PrometheusEnabled: promEnabled,
			SampleRate:        sampleRate,
		},
	}
	cfg.Telemetry.ChainID = cfg.ChainID
	return cfg, cfg.Validate()
}

// splitList accepts a TOML array or a comma separated string.
func splitList(raw any) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the values a node cannot run without.
func (c Config) Validate() error {
	if c.ChainID == "" {
		return errors.New("chain-id must be set")
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("api.rate-limit must not be negative, got %v", c.API.RateLimitRPS)
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample-rate must be in [0, 1], got %v", c.Telemetry.SampleRate)
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("log.format must be plain or json, got %q", c.LogFormat)
	}
	return nil
}

// APIServerConfig converts the API section for the server.
func (c Config) APIServerConfig() *api.Config {
	sc := api.DefaultConfig()
	sc.Address = c.API.Address
	sc.CORSOrigins = c.API.CORSOrigins
	sc.RateLimitRPS = c.API.RateLimitRPS
	sc.RateLimitBurst = c.API.RateLimitBurst
	return sc
}

// WriteConfig writes cfg to app.toml under home.
func WriteConfig(home string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(ConfigPath(home)), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("chain-id", cfg.ChainID)
	v.Set("log.level", cfg.LogLevel)
	v.Set("log.format", cfg.LogFormat)
	v.Set("api.address", cfg.API.Address)
	v.Set("api.cors-origins", cfg.API.CORSOrigins)
	v.Set("api.rate-limit", cfg.API.RateLimitRPS)
	v.Set("api.rate-burst", cfg.API.RateLimitBurst)
	v.Set("telemetry.enabled", cfg.Telemetry.Enabled)
	v.Set("telemetry.otlp-endpoint", cfg.Telemetry.OTLPEndpoint)
	v.Set("telemetry.prometheus", cfg.Telemetry.PrometheusEnabled)
	v.Set("telemetry.sample-rate", cfg.Telemetry.SampleRate)
	return v.WriteConfigAs(ConfigPath(home))
}

// shutdownTimeout bounds telemetry flushing on exit.
const shutdownTimeout = 5 * time.Second

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LogConfig controls glue verbosity
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// MetricsConfig holds Prometheus textfile export configuration
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// CommonConfig holds configuration common to every xbot command
type CommonConfig struct {
	Log     LogConfig     `mapstructure:"log"`
	OTel    OTelConfig    `mapstructure:"otel"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// InitViper initializes Viper with common settings
func InitViper(appName string) *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	v.AddConfigPath(fmt.Sprintf("/etc/%s/", appName))

	v.SetEnvPrefix("XBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.debug", false)

	// Broker defaults
	v.SetDefault("nango.base_url", DefaultNangoBaseURL)
	v.SetDefault("nango.provider_config_key", DefaultProviderConfigKey)
	v.SetDefault("nango.timeout_seconds", DefaultTimeoutSeconds)

	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.collector_endpoint", "")

	v.SetDefault("metrics.textfile", "")
}

// Load reads the configuration from file and environment
func Load(v *viper.Viper, cfg any) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// BindFlags binds common CLI flags to Viper
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().Bool("debug", false, "Enables verbose debug logging for troubleshooting")
	cmd.PersistentFlags().String("nango-base-url", "", "Nango API base URL")
	cmd.PersistentFlags().String("provider-config-key", "", "Nango provider config key of the integration")
	cmd.PersistentFlags().Int("timeout", 0, "Broker request timeout in seconds")
	cmd.PersistentFlags().Bool("otel-enabled", false, "Enable OpenTelemetry tracing")
	cmd.PersistentFlags().String("otel-collector-endpoint", "", "OpenTelemetry collector gRPC endpoint (e.g. localhost:4317)")
	cmd.PersistentFlags().String("metrics-textfile", "", "Write Prometheus metrics to this file on exit")

	v.BindPFlag("log.debug", cmd.PersistentFlags().Lookup("debug"))
	v.BindPFlag("nango.base_url", cmd.PersistentFlags().Lookup("nango-base-url"))
	v.BindPFlag("nango.provider_config_key", cmd.PersistentFlags().Lookup("provider-config-key"))
	v.BindPFlag("nango.timeout_seconds", cmd.PersistentFlags().Lookup("timeout"))
	v.BindPFlag("otel.enabled", cmd.PersistentFlags().Lookup("otel-enabled"))
	v.BindPFlag("otel.collector_endpoint", cmd.PersistentFlags().Lookup("otel-collector-endpoint"))
	v.BindPFlag("metrics.textfile", cmd.PersistentFlags().Lookup("metrics-textfile"))
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nangoVars = []string{EnvNangoClientID, EnvNangoSecretKey, EnvNangoCallbackURL}

// unsetEnv removes name for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, name string) {
	t.Helper()
	t.Setenv(name, "")
	require.NoError(t, os.Unsetenv(name))
}

func setAllNangoVars(t *testing.T) {
	t.Helper()
	t.Setenv(EnvNangoClientID, "  client-123 ")
	t.Setenv(EnvNangoSecretKey, "\tsecret-abc\n")
	t.Setenv(EnvNangoCallbackURL, " https://example.com/callback ")
}

func TestLoadNangoConfig(t *testing.T) {
	setAllNangoVars(t)

	cfg, err := LoadNangoConfig()
	require.NoError(t, err)
	assert.Equal(t, &NangoConfig{
		ClientID:    "client-123",
		SecretKey:   "secret-abc",
		CallbackURL: "https://example.com/callback",
	}, cfg)
}

func TestLoadNangoConfig_MissingVariable(t *testing.T) {
	for _, missing := range nangoVars {
		t.Run(missing, func(t *testing.T) {
			setAllNangoVars(t)
			unsetEnv(t, missing)

			cfg, err := LoadNangoConfig()
			assert.Nil(t, cfg)
			require.Error(t, err)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, missing, cfgErr.Variable)
			assert.ErrorIs(t, err, ErrMissingVariable)
		})
	}
}

func TestLoadNangoConfig_FirstMissingWins(t *testing.T) {
	for _, name := range nangoVars {
		unsetEnv(t, name)
	}
	t.Setenv(EnvNangoCallbackURL, "https://example.com/callback")

	_, err := LoadNangoConfig()

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, EnvNangoClientID, cfgErr.Variable)
}

func TestLoadNangoConfig_EmptyValueAccepted(t *testing.T) {
	setAllNangoVars(t)
	t.Setenv(EnvNangoSecretKey, "   ")

	cfg, err := LoadNangoConfig()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.SecretKey)
}

func TestLoadEnvFile(t *testing.T) {
	for _, name := range nangoVars {
		unsetEnv(t, name)
	}
	t.Setenv(EnvNangoSecretKey, "from-process")

	path := filepath.Join(t.TempDir(), ".env")
	content := "NANGO_CLIENT_ID=from-file\nNANGO_SECRET_KEY=ignored\nNANGO_CALLBACK_URL=https://example.com/cb\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, LoadEnvFile(path, false))

	cfg, err := LoadNangoConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ClientID)
	assert.Equal(t, "from-process", cfg.SecretKey)
}

func TestLoadEnvFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.env")

	assert.NoError(t, LoadEnvFile(path, true))
	assert.Error(t, LoadEnvFile(path, false))
	assert.NoError(t, LoadEnvFile("", false))
}

func TestLoadDefaultsAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	v := InitViper("xbot-test")
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, v)
	require.NoError(t, cmd.PersistentFlags().Set("debug", "true"))

	type testConfig struct {
		CommonConfig `mapstructure:",squash"`
		Nango        struct {
			BaseURL           string `mapstructure:"base_url"`
			ProviderConfigKey string `mapstructure:"provider_config_key"`
			TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
		} `mapstructure:"nango"`
	}
	var cfg testConfig
	require.NoError(t, Load(v, &cfg))

	assert.True(t, cfg.Log.Debug)
	assert.False(t, cfg.OTel.Enabled)
	assert.Equal(t, DefaultNangoBaseURL, cfg.Nango.BaseURL)
	assert.Equal(t, DefaultProviderConfigKey, cfg.Nango.ProviderConfigKey)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.Nango.TimeoutSeconds)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "nango:\n  provider_config_key: twitter-staging\notel:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0600))

	v := InitViper("xbot-test")
	v.SetConfigFile(path)

	var cfg struct {
		CommonConfig `mapstructure:",squash"`
		Nango        struct {
			ProviderConfigKey string `mapstructure:"provider_config_key"`
		} `mapstructure:"nango"`
	}
	require.NoError(t, Load(v, &cfg))

	assert.True(t, cfg.OTel.Enabled)
	assert.Equal(t, "twitter-staging", cfg.Nango.ProviderConfigKey)
}

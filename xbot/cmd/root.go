package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redhat-et/xbot-nango/pkg/config"
	"github.com/redhat-et/xbot-nango/pkg/nango"
)

var (
	cfgFile string
	envFile string
	v       *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "xbot",
	Short: "X (Twitter) bot backed by a Nango OAuth connection",
	Long: `xbot looks up the OAuth2 token of an established Nango connection for the
twitter-v2 integration and reports the scopes it grants.

Credentials are read from NANGO_CLIENT_ID, NANGO_SECRET_KEY and NANGO_CALLBACK_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadEnvFile(envFile, !cmd.Flags().Changed("env-file"))
	},
}

// Config is the full xbot configuration
type Config struct {
	config.CommonConfig `mapstructure:",squash"`
	Nango               nango.ClientConfig `mapstructure:"nango"`
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with NANGO_* variables")

	v = config.InitViper("xbot")
	config.BindFlags(rootCmd, v)
}

func initConfig() {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	}
}

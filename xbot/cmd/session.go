package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/redhat-et/xbot-nango/pkg/config"
	"github.com/redhat-et/xbot-nango/pkg/logger"
	"github.com/redhat-et/xbot-nango/pkg/metrics"
	"github.com/redhat-et/xbot-nango/pkg/nango"
	"github.com/redhat-et/xbot-nango/pkg/telemetry"
)

// fetchResult is what every subcommand works from
type fetchResult struct {
	token *nango.Token
	key   string
	log   *logger.Logger
}

// fetchConnectionToken wires config, logging, tracing and metrics around one
// broker lookup.
func fetchConnectionToken(ctx context.Context) (res *fetchResult, err error) {
	var cfg Config
	if err := config.Load(v, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetDebug(cfg.Log.Debug)
	log := logger.New(logger.ComponentCLI)
	log.Debug("Debug mode enabled")

	otelShutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:       "xbot",
		Enabled:           cfg.OTel.Enabled,
		CollectorEndpoint: cfg.OTel.CollectorEndpoint,
		Writer:            os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init telemetry: %w", err)
	}
	defer func() {
		if shutdownErr := otelShutdown(ctx); shutdownErr != nil {
			logger.New(logger.ComponentTelemetry).Warn("Telemetry shutdown failed", "error", shutdownErr)
		}
		if metricsErr := metrics.WriteTextfile(cfg.Metrics.Textfile); metricsErr != nil && err == nil {
			err = metricsErr
		}
	}()

	nangoCfg, err := config.LoadNangoConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Nango credentials: %w", err)
	}

	client := nango.NewClient(cfg.Nango, nil, logger.New(logger.ComponentNango))
	log.Debug("Looking up connection", "client_id", nangoCfg.ClientID, "provider_config_key", client.ProviderConfigKey())

	token, err := client.FetchToken(ctx, nangoCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Nango OAuth token: %w", err)
	}

	recordMissingScopes(client.ProviderConfigKey(), token)

	return &fetchResult{token: token, key: client.ProviderConfigKey(), log: log}, nil
}

// recordMissingScopes exports how many default required scopes token lacks
func recordMissingScopes(providerConfigKey string, token *nango.Token) []string {
	missing := token.Scopes().Missing(nango.DefaultRequiredScopes())
	metrics.MissingRequiredScopes.WithLabelValues(providerConfigKey).Set(float64(len(missing)))
	return missing
}

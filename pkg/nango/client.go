package nango

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redhat-et/xbot-nango/pkg/config"
	"github.com/redhat-et/xbot-nango/pkg/logger"
	"github.com/redhat-et/xbot-nango/pkg/metrics"
	"github.com/redhat-et/xbot-nango/pkg/telemetry"
)

// ClientConfig holds broker client tunables
type ClientConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	ProviderConfigKey string `mapstructure:"provider_config_key"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
}

// DefaultClientConfig returns the production broker settings
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:           config.DefaultNangoBaseURL,
		ProviderConfigKey: config.DefaultProviderConfigKey,
		TimeoutSeconds:    config.DefaultTimeoutSeconds,
	}
}

// Client looks up OAuth2 tokens of established Nango connections
type Client struct {
	baseURL           string
	providerConfigKey string
	httpClient        *http.Client
	log               *logger.Logger
}

// NewClient creates a broker client. Zero-valued fields of cfg take their defaults;
// a nil httpClient gets one with an instrumented transport and cfg's timeout.
func NewClient(cfg ClientConfig, httpClient *http.Client, log *logger.Logger) *Client {
	defaults := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.ProviderConfigKey == "" {
		cfg.ProviderConfigKey = defaults.ProviderConfigKey
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: telemetry.WrapTransport(http.DefaultTransport),
		}
	}
	if log == nil {
		log = logger.Discard(logger.ComponentNango)
	}

	return &Client{
		baseURL:           strings.TrimSuffix(cfg.BaseURL, "/"),
		providerConfigKey: cfg.ProviderConfigKey,
		httpClient:        httpClient,
		log:               log,
	}
}

// ProviderConfigKey returns the integration key sent with every lookup
func (c *Client) ProviderConfigKey() string {
	return c.providerConfigKey
}

// ConnectionURL builds the connection lookup URL for clientID
func (c *Client) ConnectionURL(clientID string) string {
	return fmt.Sprintf("%s/connection/%s?provider_config_key=%s",
		c.baseURL, url.PathEscape(clientID), url.QueryEscape(c.providerConfigKey))
}

// FetchToken performs one connection lookup and decodes credentials.raw into a Token.
// Failures are always *FetchError; nothing is retried.
func (c *Client) FetchToken(ctx context.Context, cfg *config.NangoConfig) (*Token, error) {
	ctx, span := telemetry.StartSpan(ctx, "nango.fetch_token",
		telemetry.AttrProviderConfigKey.String(c.providerConfigKey),
	)

	start := time.Now()
	token, status, fetchErr := c.fetch(ctx, cfg)
	metrics.TokenFetchDuration.WithLabelValues(c.providerConfigKey).Observe(time.Since(start).Seconds())

	outcome := outcomeOf(fetchErr)
	metrics.TokenFetches.WithLabelValues(c.providerConfigKey, outcome).Inc()
	span.SetAttributes(telemetry.AttrOutcome.String(outcome))
	if status != 0 {
		span.SetAttributes(telemetry.AttrHTTPStatus.Int(status))
	}

	if fetchErr != nil {
		telemetry.EndSpan(span, fetchErr)
		c.log.Flow(logger.DirectionIncoming, "Token lookup failed", "outcome", outcome, "error", fetchErr)
		return nil, fetchErr
	}

	span.SetAttributes(
		telemetry.AttrTokenType.String(token.TokenType),
		telemetry.AttrScopeCount.Int(token.Scopes().Len()),
	)
	if token.ExpiresIn != nil {
		span.SetAttributes(telemetry.AttrExpiresIn.Int64(*token.ExpiresIn))
	}
	telemetry.EndSpan(span, nil)
	c.log.Flow(logger.DirectionIncoming, "Token received", "token_type", token.TokenType, "scopes", token.Scopes().Len())

	return token, nil
}

func (c *Client) fetch(ctx context.Context, cfg *config.NangoConfig) (*Token, int, *FetchError) {
	endpoint := c.ConnectionURL(cfg.ClientID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, transportError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	req.Header.Set("Accept", "application/json")

	c.log.Flow(logger.DirectionOutgoing, "GET "+endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, statusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, transportError(fmt.Errorf("failed to read response: %w", err))
	}

	raw, decodeErr := decodeRaw(body)
	if decodeErr != nil {
		return nil, resp.StatusCode, decodeErr
	}
	return TokenFromRaw(raw), resp.StatusCode, nil
}

// decodeRaw extracts the credentials.raw object from a connection document.
// The body must hold exactly one JSON object.
func decodeRaw(body []byte) (map[string]any, *FetchError) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, decodeError("invalid connection document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, decodeError("trailing data after connection document")
	}
	if doc == nil {
		return nil, decodeError("connection document is null")
	}

	credentials, ok := doc["credentials"].(map[string]any)
	if !ok {
		return nil, decodeError("connection document has no credentials object")
	}
	raw, ok := credentials["raw"].(map[string]any)
	if !ok {
		return nil, decodeError("credentials have no raw object")
	}
	return raw, nil
}

func outcomeOf(err *FetchError) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	switch err.Kind {
	case KindHTTPStatus:
		return metrics.OutcomeHTTPStatus
	case KindDecode:
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeTransport
	}
}

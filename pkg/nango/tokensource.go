package nango

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/redhat-et/xbot-nango/pkg/config"
)

type connectionTokenSource struct {
	ctx    context.Context
	client *Client
	cfg    *config.NangoConfig
	now    func() time.Time
}

// TokenSource adapts the connection lookup to oauth2.TokenSource so X API calls
// can go through oauth2.NewClient. Every Token call performs one broker lookup;
// wrap it with oauth2.ReuseTokenSource to cache until expiry.
func (c *Client) TokenSource(ctx context.Context, cfg *config.NangoConfig) oauth2.TokenSource {
	return &connectionTokenSource{
		ctx:    ctx,
		client: c,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (s *connectionTokenSource) Token() (*oauth2.Token, error) {
	issuedAt := s.now()
	tok, err := s.client.FetchToken(s.ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	return tok.OAuth2(issuedAt), nil
}

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/redhat-et/xbot-nango"

// Span attribute keys for the broker token domain.
var (
	AttrProviderConfigKey = attribute.Key("xbot.nango.provider_config_key")
	AttrHTTPStatus        = attribute.Key("xbot.nango.http_status")
	AttrOutcome           = attribute.Key("xbot.nango.outcome")
	AttrTokenType         = attribute.Key("xbot.token.type")
	AttrScopeCount        = attribute.Key("xbot.token.scope_count")
	AttrExpiresIn         = attribute.Key("xbot.token.expires_in")
)

// Tracer returns the xbot tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartSpan opens a client-kind span; callers finish it with EndSpan.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan sets the span status from err and ends it. A nil err marks the span OK.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

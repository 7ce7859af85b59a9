// Package tracing bootstraps the global OpenTelemetry tracer provider
// used by the adapter packages.
package tracing

import (
	"io"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Provider is a closable tracer provider.
type Provider interface {
	trace.TracerProvider
	io.Closer
}

// ProviderBuilder hides the construction details of a concrete
// provider (config struct, exporter wiring).
type ProviderBuilder func() (Provider, error)

// Init builds the provider and installs it as the otel global, along
// with a TraceContext propagator. On builder failure a NoopProvider is
// returned together with the wrapped error, so callers can keep
// running untraced.
func Init(creator ProviderBuilder) (Provider, error) {
	provider, err := creator()
	if err != nil {
		return &NoopProvider{}, errors.Wrap(err, "failed to load tracing provider")
	}

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider, nil
}

// NoopProvider is the fallback provider used when Init fails.
type NoopProvider struct{ *tracesdk.TracerProvider }

func (NoopProvider) Close() error { return nil }

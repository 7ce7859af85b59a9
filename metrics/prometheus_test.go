package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitPrometheus(t *testing.T) {
	err := InitPrometheus()
	require.NoError(t, err)

	// The otel meter provider must be bridged into prometheus.
	require.NotNil(t, otel.GetMeterProvider())
}

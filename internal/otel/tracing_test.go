package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"

	"hancock/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{Disabled: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TracingConfig{
		ServiceName: "hancock-test",
		Protocol:    "carrier-pigeon",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewExporter_Unsupported(t *testing.T) {
	_, err := newExporter(context.Background(), config.TracingConfig{Protocol: "udp"})
	assert.EqualError(t, err, "unsupported OTLP protocol: udp")
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "always_on", want: trace.AlwaysSample().Description()},
		{name: "always_off", want: trace.NeverSample().Description()},
		{name: "traceidratio", arg: "0.5", want: trace.TraceIDRatioBased(0.5).Description()},
		{name: "traceidratio", arg: "half", want: trace.TraceIDRatioBased(1).Description()},
		{name: "parentbased_traceidratio", arg: "0.25", want: trace.ParentBased(trace.TraceIDRatioBased(0.25)).Description()},
		{name: "", want: trace.ParentBased(trace.AlwaysSample()).Description()},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.arg, func(t *testing.T) {
			assert.Equal(t, tt.want, newSampler(tt.name, tt.arg).Description())
		})
	}
}

package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machines"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetupTracing_None(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := SetupTracing(context.Background(), TracingConfig{Exporter: ExporterNone})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetupTracing_Invalid(t *testing.T) {
	_, err := SetupTracing(context.Background(), TracingConfig{Exporter: "zipkin"})
	assert.ErrorContains(t, err, "unknown trace exporter")

	_, err = SetupTracing(context.Background(), TracingConfig{Exporter: ExporterOTLP})
	assert.ErrorContains(t, err, "endpoint")
}

func TestSetupTracing_Stdout(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	var buf bytes.Buffer
	shutdown, err := SetupTracing(context.Background(), TracingConfig{
		Exporter:    ExporterStdout,
		ServiceName: "turing-test",
		Version:     "test",
		Writer:      &buf,
	})
	require.NoError(t, err)

	// the runner picks up the global provider
	def := machines.FlipHalt()
	_, err = runner.New().Run(context.Background(), def, def.NewTape(domain.Symbols("0")))
	require.NoError(t, err)

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, buf.String(), `"Name":"turing.run"`)
	assert.Contains(t, buf.String(), "turing-test")
}

// Package telemetry sets up OpenTelemetry and records client events.
package telemetry

import (
	"fmt"
	"os"

	"github.com/honeycombio/otel-config-go/otelconfig"

	"go.minekube.com/bot/pkg/version"
)

// Enabled reports whether an OTLP endpoint is configured in the environment.
func Enabled() bool {
	for _, key := range []string{
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_TRACES_ENDPOINT",
		"OTEL_EXPORTER_OTLP_METRICS_ENDPOINT",
	} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// Init configures the global OpenTelemetry providers from the standard
// OTEL_* environment variables. The returned func flushes and stops them.
func Init() (shutdown func(), err error) {
	shutdown, err = otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName("bot"),
		otelconfig.WithServiceVersion(version.String()),
	)
	if err != nil {
		return nil, fmt.Errorf("error configuring OpenTelemetry: %w", err)
	}
	return shutdown, nil
}

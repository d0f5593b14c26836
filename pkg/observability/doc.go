// Package observability provides logging, metrics, health checks, tracing,
// and graceful shutdown for the server mode.
//
// # Overview
//
// Logging uses logrus with a JSON formatter. Metrics are Prometheus
// collectors on a private registry. Tracing and OTLP metric export are
// optional and disabled by default; enabling them wires the global
// OpenTelemetry providers so the storage and API spans become visible.
//
// # Usage Example
//
//	logger := observability.NewLogger("info")
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//
//	providers, err := observability.InitOTel(ctx, otelCfg, logger)
//	if err != nil {
//		logger.WithError(err).Fatal("otel init failed")
//	}
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/api: Serves /metrics and health endpoints, records HTTP metrics
//   - pkg/config: Supplies the observability settings
package observability

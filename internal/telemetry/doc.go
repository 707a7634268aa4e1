// Package telemetry обеспечивает наблюдаемость CLI.
//
// Включает:
//   - logging.go — structured logging через slog (в stderr)
//   - metrics.go — Prometheus метрики HTTP-транспорта
//   - tracing.go — OpenTelemetry трейсинг исходящих запросов
//
// Метрики не экспортируются по HTTP: CLI живёт одну команду,
// поэтому они записываются в textfile для node_exporter.
package telemetry

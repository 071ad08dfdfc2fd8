// Package diagnostics provides the DiagnosticsSink implementations used by the cloning engine:
// an in-memory Collector, a slog-backed LogSink, a fan-out Multi and a no-op Nop.
package diagnostics

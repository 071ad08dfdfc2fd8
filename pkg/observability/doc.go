/*
Package observability exposes Prometheus metrics for clone operations.

Metrics can be registered on any prometheus.Registerer; tests and embedders should pass their own
registry instead of the global one.
*/
package observability

package ports

import "github.com/aretw0/animclone/pkg/domain"

// DiagnosticsSink receives warnings raised while cloning or registering a graph.
// Implementations must not block and must not panic.
type DiagnosticsSink interface {
	ReportWarning(w domain.Warning)
}

// DiagnosticsFunc adapts a function to DiagnosticsSink.
type DiagnosticsFunc func(w domain.Warning)

func (f DiagnosticsFunc) ReportWarning(w domain.Warning) { f(w) }

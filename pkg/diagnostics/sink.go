package diagnostics

import (
	"log/slog"
	"sync"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
)

// Collector records every warning it receives. Safe for concurrent use.
type Collector struct {
	mu       sync.Mutex
	warnings []domain.Warning
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) ReportWarning(w domain.Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of the recorded warnings in arrival order.
func (c *Collector) Warnings() []domain.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// OfKind returns the recorded warnings of the given kind.
func (c *Collector) OfKind(kind domain.WarningKind) []domain.Warning {
	var out []domain.Warning
	for _, w := range c.Warnings() {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Reset drops every recorded warning.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = nil
}

// LogSink writes warnings to a structured logger at Warn level.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to logger. A nil logger falls back to slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) ReportWarning(w domain.Warning) {
	s.logger.Warn(w.Message,
		"kind", string(w.Kind),
		"source", w.Source,
		"target", w.Target,
	)
}

// Multi fans a warning out to several sinks in order.
type Multi []ports.DiagnosticsSink

func (m Multi) ReportWarning(w domain.Warning) {
	for _, sink := range m {
		if sink != nil {
			sink.ReportWarning(w)
		}
	}
}

// Nop discards every warning.
type Nop struct{}

func (Nop) ReportWarning(domain.Warning) {}

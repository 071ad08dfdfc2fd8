package clone

import (
	"log/slog"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
)

// reporter forwards warnings to the sink and keeps a copy for the result.
type reporter struct {
	sink     ports.DiagnosticsSink
	logger   *slog.Logger
	warnings []domain.Warning
}

func newReporter(sink ports.DiagnosticsSink, logger *slog.Logger) *reporter {
	return &reporter{sink: sink, logger: logger}
}

func (r *reporter) warn(kind domain.WarningKind, source, target, msg string) {
	w := domain.Warning{Kind: kind, Source: source, Target: target, Message: msg}
	r.warnings = append(r.warnings, w)
	r.logger.Debug("clone warning", "kind", kind, "source", source, "target", target)
	if r.sink != nil {
		r.sink.ReportWarning(w)
	}
}

func (r *reporter) collected() []domain.Warning {
	out := make([]domain.Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

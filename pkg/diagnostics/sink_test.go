package diagnostics_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/animclone/pkg/diagnostics"
	"github.com/aretw0/animclone/pkg/domain"
	"github.com/aretw0/animclone/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := diagnostics.NewCollector()
	c.ReportWarning(domain.Warning{Kind: domain.WarningResolution, Source: "A", Target: "Ghost"})
	c.ReportWarning(domain.Warning{Kind: domain.WarningStructuralDrop, Source: "M"})

	assert.Len(t, c.Warnings(), 2)
	assert.Len(t, c.OfKind(domain.WarningResolution), 1)
	assert.Empty(t, c.OfKind(domain.WarningOwnershipConflict))

	got := c.Warnings()
	got[0].Source = "mutated"
	assert.Equal(t, "A", c.Warnings()[0].Source, "Warnings must return a copy")

	c.Reset()
	assert.Empty(t, c.Warnings())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	diagnostics.NewLogSink(logger).ReportWarning(domain.Warning{
		Kind:    domain.WarningResolution,
		Source:  "A",
		Target:  "Ghost",
		Message: "destination not found",
	})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "kind=resolution")
	assert.Contains(t, out, "target=Ghost")
}

func TestMulti(t *testing.T) {
	a := diagnostics.NewCollector()
	b := diagnostics.NewCollector()
	var calls int
	sink := diagnostics.Multi{a, nil, b, ports.DiagnosticsFunc(func(domain.Warning) { calls++ }), diagnostics.Nop{}}

	sink.ReportWarning(domain.Warning{Kind: domain.WarningStructuralDrop})

	assert.Len(t, a.Warnings(), 1)
	assert.Len(t, b.Warnings(), 1)
	assert.Equal(t, 1, calls)
}

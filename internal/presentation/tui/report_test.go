package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, Report{
		Source:      "locomotion",
		Destination: "copy",
		Summary:     domain.Summary{Machines: 2, States: 3, Transitions: 4},
		Warnings: []domain.Warning{
			{Kind: domain.WarningResolution, Source: "Walk", Target: "Ghost", Message: "destination not in cloned tree; redirected to exit"},
		},
		Registration: true,
		Registered:   9,
		Conflicts:    1,
	})

	got := buf.String()
	// A bytes.Buffer is not a terminal, so no escape sequences are emitted.
	assert.NotContains(t, got, "\x1b[")
	assert.Contains(t, got, "Cloned locomotion -> copy\n")
	assert.Contains(t, got, "machines: 2  states: 3  transitions: 4")
	assert.Contains(t, got, "registered: 9  conflicts: 1  failures: 0\n")
	assert.Contains(t, got, "Warnings (1)\n")
	assert.Contains(t, got, "resolution")
	assert.Contains(t, got, " Walk -> Ghost: destination not in cloned tree; redirected to exit\n")
}

func TestPrintReport_NoWarnings(t *testing.T) {
	var buf bytes.Buffer
	PrintReport(&buf, Report{Source: "idle"})

	got := buf.String()
	assert.Contains(t, got, "Checked idle\n")
	assert.Contains(t, got, "No warnings.\n")
	assert.NotContains(t, got, "registered:")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_|")
}

package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/muesli/termenv"
)

// Report is the outcome of one clone as shown on the terminal.
type Report struct {
	Source      string
	Destination string
	Summary     domain.Summary
	Warnings    []domain.Warning
	Registered  int
	Conflicts   int
	Failures    int
	// Registration is false when no container was involved.
	Registration bool
}

var warningColors = map[domain.WarningKind]string{
	domain.WarningResolution:         "#fbbf24",
	domain.WarningStructuralDrop:     "#fb923c",
	domain.WarningOwnershipConflict:  "#60a5fa",
	domain.WarningRegistrationFailed: "#f87171",
}

// PrintReport writes r to w. Colors follow the terminal profile of w, so plain writers
// receive plain text.
func PrintReport(w io.Writer, r Report) {
	out := termenv.NewOutput(w)
	heading := func(s string) termenv.Style {
		return out.String(s).Bold()
	}

	if r.Source != "" {
		if r.Destination != "" {
			fmt.Fprintf(w, "%s %s -> %s\n", heading("Cloned"), r.Source, r.Destination)
		} else {
			fmt.Fprintf(w, "%s %s\n", heading("Checked"), r.Source)
		}
	}

	s := r.Summary
	fmt.Fprintf(w, "  machines: %d  states: %d  transitions: %d  any-state: %d  entry: %d  behaviours: %d\n",
		s.Machines, s.States, s.Transitions, s.AnyStateTransitions, s.EntryTransitions, s.Behaviours)

	if r.Registration {
		fmt.Fprintf(w, "  registered: %d  conflicts: %d  failures: %d\n", r.Registered, r.Conflicts, r.Failures)
	}

	if len(r.Warnings) == 0 {
		fmt.Fprintln(w, out.String("No warnings.").Foreground(out.Color("#4ade80")))
		return
	}

	fmt.Fprintf(w, "%s (%d)\n", heading("Warnings"), len(r.Warnings))
	for _, warn := range r.Warnings {
		color, ok := warningColors[warn.Kind]
		if !ok {
			color = "#e5e7eb"
		}
		kind := out.String(fmt.Sprintf("%-20s", warn.Kind)).Foreground(out.Color(color))
		target := ""
		if warn.Target != "" {
			target = " -> " + warn.Target
		}
		fmt.Fprintf(w, "  %s %s%s: %s\n", kind, warn.Source, target, warn.Message)
	}
}

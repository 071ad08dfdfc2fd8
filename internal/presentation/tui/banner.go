package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the animclone banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"              _                 _                  ", "#818cf8"},
		{"   __ _ _ __ (_)_ __ ___   ___| | ___  _ __   ___ ", "#a78bfa"},
		{"  / _` | '_ \\| | '_ ` _ \\ / __| |/ _ \\| '_ \\ / _ \\", "#c084fc"},
		{" | (_| | | | | | | | | | | (__| | (_) | | | |  __/", "#e879f9"},
		{"  \\__,_|_| |_|_|_| |_| |_|\\___|_|\\___/|_| |_|\\___|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

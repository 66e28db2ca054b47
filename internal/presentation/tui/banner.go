package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{`   ______      __              ____            __  `, "#38bdf8"},
	{`  / ____/_  __/ /_  ___  _____/ __ \___  _____/ /__`, "#22d3ee"},
	{` / /   / / / / __ \/ _ \/ ___/ / / / _ \/ ___/ //_/`, "#2dd4bf"},
	{`/ /___/ /_/ / /_/ /  __/ /  / /_/ /  __(__  ) ,<   `, "#34d399"},
	{`\____/\__, /_.___/\___/_/  /_____/\___/____/_/|_|  `, "#4ade80"},
	{`     /____/                                        `, "#a3e635"},
}

// PrintBanner writes the coloured startup banner and subtitle to w.
func PrintBanner(w io.Writer, subtitle string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	if subtitle != "" {
		fmt.Fprintln(w, termenv.String(subtitle).Faint())
	}
	fmt.Fprintln(w)
}

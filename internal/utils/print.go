package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
)

// Printer writes user-facing output of the interactive loop.
type Printer struct {
	Out   io.Writer
	Color bool
	Width int
}

// Reply prints the backend reply, prefixed by who said it.
func (p Printer) Reply(speaker, reply string) {
	if p.Color {
		speaker = ancli.ColoredMessage(ancli.BLUE, speaker)
	}
	fmt.Fprintf(p.Out, "%v says: %v\n", speaker, reply)
}

func (p Printer) Println(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// Problem prints a message about something the user should act upon.
func (p Printer) Problem(msg string) {
	if p.Color {
		msg = ancli.ColoredMessage(ancli.MAGENTA, msg)
	}
	fmt.Fprintln(p.Out, msg)
}

func (p Printer) Prompt(prompt string) {
	if p.Color {
		prompt = ancli.ColoredMessage(ancli.CYAN, prompt)
	}
	fmt.Fprint(p.Out, prompt)
}

// Table prints one 'name: [a b c]' entry per row. If every entry fits
// within the width, they are printed on a single line instead.
func (p Printer) Table(title string, rows []string) {
	oneLine := title + " " + strings.Join(rows, ", ")
	width := p.Width
	if width <= 0 {
		width = defaultTermWidth
	}
	if len(oneLine) <= width {
		fmt.Fprintln(p.Out, oneLine)
		return
	}
	fmt.Fprintln(p.Out, title)
	for _, r := range rows {
		fmt.Fprintf(p.Out, "  %v\n", r)
	}
}

package notify

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/term"
)

// ANSI color codes
const (
	reset = "\033[0m"
	red   = "\033[31m"
	green = "\033[32m"
	bold  = "\033[1m"
)

// Terminal prints "[OK] title: message" or "[ERROR] title: message" lines.
type Terminal struct {
	w     io.Writer
	color bool
}

// NewTerminal colours the prefix only when w is a terminal.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w, color: isTTY(w)}
}

func isTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func (t *Terminal) colorize(color, msg string) string {
	if !t.color {
		return msg
	}
	return color + msg + reset
}

func (t *Terminal) Notify(_ context.Context, n Notification) error {
	prefix := t.colorize(bold+red, "[ERROR]")
	if n.Success {
		prefix = t.colorize(green, "[OK]")
	}
	_, err := fmt.Fprintf(t.w, "%s %s\n", prefix, n)
	return err
}

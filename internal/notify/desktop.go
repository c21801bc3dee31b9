package notify

import (
	"context"
	"errors"
	"runtime"
	"strings"
)

// Desktop shows a native notification through osascript (macOS) or
// notify-send (Linux and the BSDs). Without a helper it hands over to Fallback.
type Desktop struct {
	Fallback Notifier

	goos string
	run  runFunc
}

func NewDesktop(fallback Notifier) *Desktop {
	return &Desktop{
		Fallback: fallback,
		goos:     runtime.GOOS,
		run:      execRun(DefaultTimeout),
	}
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args := desktopCommand(d.goos, n)
	if name == "" {
		return d.fallback(ctx, n)
	}
	err := d.run(ctx, name, args...)
	if errors.Is(err, errToolMissing) {
		return d.fallback(ctx, n)
	}
	return err
}

func (d *Desktop) fallback(ctx context.Context, n Notification) error {
	if d.Fallback == nil {
		return nil
	}
	return d.Fallback.Notify(ctx, n)
}

func desktopCommand(goos string, n Notification) (string, []string) {
	switch goos {
	case "darwin":
		script := "display notification " + appleScriptString(n.Message) +
			" with title " + appleScriptString("modelboiler") +
			" subtitle " + appleScriptString(n.Title)
		return "osascript", []string{"-e", script}
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		urgency := "normal"
		if !n.Success {
			urgency = "critical"
		}
		return "notify-send", []string{"--app-name=modelboiler", "--urgency=" + urgency, n.Title, n.Message}
	default:
		return "", nil
	}
}

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func appleScriptString(s string) string {
	return `"` + appleScriptEscaper.Replace(s) + `"`
}

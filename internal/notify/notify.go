// Package notify tells the user how a generation run went: a status line on
// the terminal, a desktop notification, and a short sound.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every notification tool invocation.
const DefaultTimeout = 5 * time.Second

// Notification is one user-facing status message.
type Notification struct {
	Title   string
	Message string
	Success bool
}

func (n Notification) String() string {
	if n.Message == "" {
		return n.Title
	}
	return n.Title + ": " + n.Message
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(context.Context, Notification) error { return nil }

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// errToolMissing reports that a helper program is not installed.
var errToolMissing = errors.New("tool not found")

// runFunc executes an external program.
type runFunc func(ctx context.Context, name string, args ...string) error

func execRun(timeout time.Duration) runFunc {
	return func(ctx context.Context, name string, args ...string) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, name, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		err := cmd.Run()
		if err == nil {
			return nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s: %w", name, errToolMissing)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s: exit code %d: %s", name, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("failed to execute %s: %w", name, err)
	}
}

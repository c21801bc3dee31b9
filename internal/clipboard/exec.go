package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every clipboard tool invocation.
const DefaultTimeout = 5 * time.Second

// Command is an external program with its arguments.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Exec drives the clipboard through command line tools such as pbcopy or xclip.
type Exec struct {
	Paste   Command
	Copy    Command
	Timeout time.Duration
}

func (e *Exec) ReadText(ctx context.Context) (string, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Paste.Name, e.Paste.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", e.wrap(e.Paste, err, stderr.String())
	}
	return string(out), nil
}

func (e *Exec) WriteText(ctx context.Context, text string) error {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.Copy.Name, e.Copy.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return e.wrap(e.Copy, err, stderr.String())
	}
	return nil
}

func (e *Exec) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (e *Exec) wrap(c Command, err error, stderr string) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s not found", ErrUnavailable, c.Name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("%s: exit code %d: %s", c, exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("%s: exit code %d", c, exitErr.ExitCode())
	}
	return fmt.Errorf("failed to execute %s: %w", c, err)
}

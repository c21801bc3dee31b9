// Package clipboard reads the declarations to convert and writes the
// generated code back. Besides the system clipboard it offers stream and
// in-memory backends so that files, stdio and tests share one interface.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// ErrUnavailable is returned when no usable clipboard backend exists.
var ErrUnavailable = errors.New("clipboard unavailable")

// Clipboard is a plain-text source and sink.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Memory is an in-process clipboard.
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
}

func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.writes++
	return nil
}

// Text returns the current content.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes reports how many times WriteText succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Stream reads the whole of In and writes to Out. Written text always ends
// with a newline. A nil side reports ErrUnavailable.
type Stream struct {
	In  io.Reader
	Out io.Writer
}

func (s Stream) ReadText(ctx context.Context) (string, error) {
	if s.In == nil {
		return "", ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(s.In)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

func (s Stream) WriteText(ctx context.Context, text string) error {
	if s.Out == nil {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := io.WriteString(s.Out, text); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Pair reads from In and writes to Out.
type Pair struct {
	In  Clipboard
	Out Clipboard
}

func (p Pair) ReadText(ctx context.Context) (string, error) {
	return p.In.ReadText(ctx)
}

func (p Pair) WriteText(ctx context.Context, text string) error {
	return p.Out.WriteText(ctx, text)
}

// File reads and writes a whole file. The file is only touched by WriteText,
// so a failed generation never truncates it.
type File struct {
	Path string
}

func (f File) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Path, err)
	}
	return string(data), nil
}

func (f File) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(f.Path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Package service runs one generation pass end to end: read the declarations,
// generate the Codable code, write it back and tell the user how it went.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/modelboiler/internal/clipboard"
	"github.com/Alia5/modelboiler/internal/codegen/generator"
	"github.com/Alia5/modelboiler/internal/codegen/generator/swift"
	"github.com/Alia5/modelboiler/internal/codegen/scanner"
	"github.com/Alia5/modelboiler/internal/log"
	"github.com/Alia5/modelboiler/internal/notify"
)

// ErrNoText is returned when the input holds nothing but whitespace.
var ErrNoText = errors.New("no text selected")

const (
	titleNoText  = "No text selected"
	titleSuccess = "Code generated"
	titleFailure = "Code generation failed"
)

// Config wires the collaborators of a Service.
type Config struct {
	Clipboard clipboard.Clipboard
	Notifier  notify.Notifier
	// Source names where input comes from, e.g. "the clipboard", "stdin" or a file path.
	Source string
	// Destination names where output goes, e.g. "the clipboard" or a file path.
	Destination string
	Settings    generator.Settings
}

type Service struct {
	cfg       Config
	generator *generator.Generator
	logger    *slog.Logger
	raw       log.RawLogger
}

func New(logger *slog.Logger, raw log.RawLogger, cfg Config) *Service {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.Source == "" {
		cfg.Source = "the clipboard"
	}
	if cfg.Destination == "" {
		cfg.Destination = "the clipboard"
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Service{
		cfg:       cfg,
		generator: generator.New(logger, cfg.Settings),
		logger:    logger,
		raw:       raw,
	}
}

// Run performs one pass. Output is written only when generation succeeded
// for every declaration. The returned error is the one shown to the user.
func (s *Service) Run(ctx context.Context) error {
	src, err := s.cfg.Clipboard.ReadText(ctx)
	if err != nil {
		err = fmt.Errorf("read input: %w", err)
		s.notify(ctx, notify.Notification{Title: titleNoText, Message: "Error: " + err.Error()})
		return err
	}
	if strings.TrimSpace(src) == "" {
		s.notify(ctx, notify.Notification{Title: titleNoText, Message: "Nothing was found in " + s.cfg.Source + "."})
		return ErrNoText
	}
	s.raw.Log(true, []byte(src))

	out, err := s.generate(src)
	if err != nil {
		s.logger.Error("Code generation failed", "error", err)
		s.notify(ctx, notify.Notification{Title: titleFailure, Message: "Error: " + Describe(err)})
		return err
	}

	if err := s.cfg.Clipboard.WriteText(ctx, out); err != nil {
		err = fmt.Errorf("write output: %w", err)
		s.logger.Error("Writing generated code failed", "error", err)
		s.notify(ctx, notify.Notification{Title: titleFailure, Message: "Error: " + err.Error()})
		return err
	}
	s.raw.Log(false, []byte(out))

	s.notify(ctx, notify.Notification{
		Title:   titleSuccess,
		Message: "The code has been copied to " + s.cfg.Destination + ".",
		Success: true,
	})
	return nil
}

func (s *Service) generate(src string) (string, error) {
	code, err := s.generator.Generate(src)
	if err != nil {
		return "", err
	}
	return code.Render()
}

func (s *Service) notify(ctx context.Context, n notify.Notification) {
	if err := s.cfg.Notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to deliver notification", "title", n.Title, "error", err)
	}
}

// Describe turns a generation error into the sentence shown to the user,
// dropping the wrapping added on the way up.
func Describe(err error) string {
	var (
		tie *swift.TypeInferenceError
		dup *swift.DuplicatePropertyError
		se  *scanner.StructuralError
	)
	switch {
	case errors.As(err, &tie):
		return tie.Error()
	case errors.As(err, &dup):
		return dup.Error()
	case errors.As(err, &se):
		return se.Error()
	default:
		return err.Error()
	}
}

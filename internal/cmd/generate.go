package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/modelboiler/internal/clipboard"
	"github.com/Alia5/modelboiler/internal/codegen/generator"
	"github.com/Alia5/modelboiler/internal/log"
	"github.com/Alia5/modelboiler/internal/notify"
	"github.com/Alia5/modelboiler/internal/service"
)

// Settings are the generation flags shared by generate and scan.
type Settings struct {
	MapSnakeCase       bool `help:"Use snake_case wire keys for camelCase properties (mapUnderscoreToCamelCase)" env:"MODELBOILER_MAP_SNAKE_CASE"`
	NoConvertCamelCase bool `help:"Never convert property names; overrides --map-snake-case" env:"MODELBOILER_NO_CONVERT_CAMEL_CASE"`
}

type Generate struct {
	Settings              `embed:""`
	OnlyCreateInitializer bool   `help:"Only generate init(from:)" env:"MODELBOILER_ONLY_CREATE_INITIALIZER"`
	MuteSound             bool   `help:"Do not play a sound when done" env:"MODELBOILER_MUTE_SOUND"`
	Notify                string `help:"How to report the result: terminal, desktop or none" default:"terminal" enum:"terminal,desktop,none" env:"MODELBOILER_NOTIFY"`
	Input                 string `help:"Read declarations from a file ('-' for stdin) instead of the clipboard" env:"MODELBOILER_INPUT"`
	Output                string `help:"Write generated code to a file ('-' for stdout) instead of the clipboard" env:"MODELBOILER_OUTPUT"`
	Stdout                bool   `help:"Write generated code to stdout; same as --output=-"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.Execute(ctx, logger, rawLogger, os.Stdin, os.Stdout, os.Stderr)
}

// Execute runs one generation pass with explicit stdio.
func (g *Generate) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, stdin io.Reader, stdout, stderr io.Writer) error {
	output := g.Output
	if g.Stdout {
		output = "-"
	}

	cb, dest, err := endpoints(g.Input, output, stdin, stdout)
	if err != nil {
		return err
	}

	settings := generator.Settings{
		MapSnakeCase:          g.MapSnakeCase,
		NoConvertCamelCase:    g.NoConvertCamelCase,
		OnlyCreateInitializer: g.OnlyCreateInitializer,
	}
	source := describeEndpoint(g.Input, "stdin")
	logger.Debug("Starting code generation", "input", source, "output", dest,
		"mapSnakeCase", settings.MapSnakeCase, "noConvertCamelCase", settings.NoConvertCamelCase,
		"onlyCreateInitializer", settings.OnlyCreateInitializer)

	svc := service.New(logger, rawLogger, service.Config{
		Clipboard:   cb,
		Notifier:    g.notifier(stderr),
		Source:      source,
		Destination: dest,
		Settings:    settings,
	})
	return svc.Run(ctx)
}

func (g *Generate) notifier(stderr io.Writer) notify.Notifier {
	sound := notify.NewSound(g.MuteSound, stderr)
	switch g.Notify {
	case "none":
		return sound
	case "desktop":
		return notify.Multi{notify.NewDesktop(notify.NewTerminal(stderr)), sound}
	default:
		return notify.Multi{notify.NewTerminal(stderr), sound}
	}
}

// endpoints resolves --input/--output. Empty means the system clipboard and
// "-" means stdio. The system clipboard is only looked up when used.
func endpoints(input, output string, stdin io.Reader, stdout io.Writer) (clipboard.Clipboard, string, error) {
	var system clipboard.Clipboard
	open := func(path string, read bool) (clipboard.Clipboard, error) {
		switch path {
		case "":
			if system == nil {
				var err error
				if system, err = clipboard.System(); err != nil {
					return nil, fmt.Errorf("no clipboard tool found, use --input/--output: %w", err)
				}
			}
			return system, nil
		case "-":
			if read {
				return clipboard.Stream{In: stdin}, nil
			}
			return clipboard.Stream{Out: stdout}, nil
		default:
			return clipboard.File{Path: path}, nil
		}
	}

	in, err := open(input, true)
	if err != nil {
		return nil, "", err
	}
	out, err := open(output, false)
	if err != nil {
		return nil, "", err
	}
	return clipboard.Pair{In: in, Out: out}, describeEndpoint(output, "stdout"), nil
}

func describeEndpoint(path, stdio string) string {
	switch path {
	case "":
		return "the clipboard"
	case "-":
		return stdio
	default:
		return path
	}
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Alia5/modelboiler/internal/codegen/generator"
	"github.com/Alia5/modelboiler/internal/log"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Scan prints the declarations found in the input with the inferred type of
// every property, without generating code.
type Scan struct {
	Settings `embed:""`
	Input    string `help:"Read declarations from a file ('-' for stdin) instead of the clipboard" env:"MODELBOILER_INPUT"`
	Format   string `help:"Output format" enum:"json,yaml,toml" default:"json"`
}

// Run is called by Kong when the scan command is executed.
func (s *Scan) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Execute(ctx, logger, rawLogger, os.Stdin, os.Stdout)
}

func (s *Scan) Execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger, stdin io.Reader, stdout io.Writer) error {
	format := normalizeFormat(s.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", s.Format)
	}

	cb, _, err := endpoints(s.Input, "-", stdin, stdout)
	if err != nil {
		return err
	}
	src, err := cb.ReadText(ctx)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("nothing to scan in %s", describeEndpoint(s.Input, "stdin"))
	}
	if rawLogger != nil {
		rawLogger.Log(true, []byte(src))
	}

	gen := generator.New(logger, generator.Settings{
		MapSnakeCase:       s.MapSnakeCase,
		NoConvertCamelCase: s.NoConvertCamelCase,
	})
	md, err := gen.Scan(src)
	if err != nil {
		return err
	}

	data, err := marshalReport(gen.Describe(md), format)
	if err != nil {
		return fmt.Errorf("encode %s report: %w", format, err)
	}
	return cb.WriteText(ctx, string(data))
}

func marshalReport(r generator.Report, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(r)
	case "toml":
		return toml.Marshal(r)
	default:
		return json.MarshalIndent(r, "", "  ")
	}
}

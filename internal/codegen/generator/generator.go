package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alia5/modelboiler/internal/codegen/generator/swift"
	"github.com/Alia5/modelboiler/internal/codegen/meta"
	"github.com/Alia5/modelboiler/internal/codegen/scanner"
)

// Settings are the generation options exposed to the user.
type Settings struct {
	MapSnakeCase          bool // camelCase property names get snake_case wire keys
	NoConvertCamelCase    bool // inverse alias of MapSnakeCase; wins when both are set
	OnlyCreateInitializer bool // output only init(from:)
}

func (s Settings) options() swift.Options {
	return swift.Options{MapSnakeCase: s.MapSnakeCase && !s.NoConvertCamelCase}
}

type Generator struct {
	settings Settings
	logger   *slog.Logger
}

func New(logger *slog.Logger, settings Settings) *Generator {
	return &Generator{
		settings: settings,
		logger:   logger,
	}
}

// DeclarationCode is the generated code for one declaration.
type DeclarationCode struct {
	Declaration scanner.Declaration
	Blocks      swift.CodeBlockSet
}

// GeneratedCode is the result of one generation pass.
type GeneratedCode struct {
	Declarations          []DeclarationCode
	OnlyCreateInitializer bool
}

// Render joins the per-declaration bodies with a blank line. When more than
// one declaration was generated each body is preceded by a MARK comment
// naming it.
func (c *GeneratedCode) Render() (string, error) {
	bodies := make([]string, 0, len(c.Declarations))
	for _, d := range c.Declarations {
		var (
			body string
			err  error
		)
		if c.OnlyCreateInitializer {
			body, err = d.Blocks.RenderDecoder()
		} else {
			body, err = d.Blocks.Render()
		}
		if err != nil {
			return "", fmt.Errorf("render %s: %w", d.Declaration.QualifiedName, err)
		}
		if len(c.Declarations) > 1 {
			body = "// MARK: - " + d.Declaration.QualifiedName + "\n\n" + body
		}
		bodies = append(bodies, body)
	}
	return strings.Join(bodies, "\n"), nil
}

// Scan splits the source into declarations.
func (g *Generator) Scan(src string) (*meta.Metadata, error) {
	g.logger.Debug("Scanning source", "bytes", len(src))

	decls, err := scanner.Scan(src)
	if err != nil {
		return nil, fmt.Errorf("scan declarations: %w", err)
	}

	md := &meta.Metadata{Source: src, Declarations: decls}
	for _, d := range decls {
		if d.Repaired {
			g.logger.Warn("Declaration is missing its closing brace, assuming end of input", "declaration", d.QualifiedName)
		}
		g.logger.Debug("Found declaration", "declaration", d.QualifiedName, "kind", d.Kind, "properties", len(d.Properties))
	}
	g.logger.Info("Found declarations", "count", len(decls), "properties", md.Properties())
	return md, nil
}

// Generate scans the source and generates Codable code for every declaration.
// Any error aborts the whole batch.
func (g *Generator) Generate(src string) (*GeneratedCode, error) {
	md, err := g.Scan(src)
	if err != nil {
		return nil, err
	}
	return g.GenerateFromMetadata(md)
}

func (g *Generator) GenerateFromMetadata(md *meta.Metadata) (*GeneratedCode, error) {
	opts := g.settings.options()
	code := &GeneratedCode{
		Declarations:          make([]DeclarationCode, 0, len(md.Declarations)),
		OnlyCreateInitializer: g.settings.OnlyCreateInitializer,
	}

	for _, d := range md.Declarations {
		blocks, err := swift.Generate(d.QualifiedName, d.Properties, opts)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", d.QualifiedName, err)
		}
		code.Declarations = append(code.Declarations, DeclarationCode{Declaration: d, Blocks: blocks})
	}

	g.logger.Info("Code generation complete", "declarations", len(code.Declarations), "snakeCaseKeys", opts.MapSnakeCase)
	return code, nil
}

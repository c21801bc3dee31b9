package swift

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Alia5/modelboiler/internal/codegen/common"
	"github.com/Alia5/modelboiler/internal/codegen/scanner"
)

const indent = "    "

const blockTemplate = `{{range .Header}}{{.}}
{{end}}{{range .Lines}}{{indent}}{{.}}
{{end}}{{range .Footer}}{{.}}
{{end}}`

var blockTmpl = template.Must(template.New("block").
	Funcs(template.FuncMap{"indent": func() string { return indent }}).
	Parse(blockTemplate))

// CodeBlock is one generated Swift block. Lines holds exactly one unindented
// line per property; Header and Footer are fixed.
type CodeBlock struct {
	Header []string
	Lines  []string
	Footer []string
}

// Render returns the block as source text ending in a newline.
func (b CodeBlock) Render() (string, error) {
	var sb strings.Builder
	if err := blockTmpl.Execute(&sb, b); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return sb.String(), nil
}

// CodeBlockSet holds the three blocks generated for one declaration. Line i of
// every block describes the same property.
type CodeBlockSet struct {
	CodingKeys CodeBlock
	EncodeBody CodeBlock
	DecodeBody CodeBlock
}

// Render concatenates the blocks in order keys, encoder, decoder separated by
// a blank line.
func (s CodeBlockSet) Render() (string, error) {
	return renderBlocks(s.CodingKeys, s.EncodeBody, s.DecodeBody)
}

// RenderDecoder returns only the init(from:) block.
func (s CodeBlockSet) RenderDecoder() (string, error) {
	return renderBlocks(s.DecodeBody)
}

func renderBlocks(blocks ...CodeBlock) (string, error) {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		text, err := b.Render()
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

// Options controls the generated code.
type Options struct {
	// MapSnakeCase writes snake_case wire keys for camelCase property names.
	MapSnakeCase bool
}

func newBlockSet(n int) CodeBlockSet {
	return CodeBlockSet{
		CodingKeys: CodeBlock{
			Header: []string{"enum CodingKeys: String, CodingKey {"},
			Lines:  make([]string, 0, n),
			Footer: []string{"}"},
		},
		EncodeBody: CodeBlock{
			Header: []string{
				"public func encode(to encoder: Encoder) throws {",
				indent + "var container = encoder.container(keyedBy: CodingKeys.self)",
			},
			Lines:  make([]string, 0, n),
			Footer: []string{"}"},
		},
		DecodeBody: CodeBlock{
			Header: []string{
				"public init(from decoder: Decoder) throws {",
				indent + "let container = try decoder.container(keyedBy: CodingKeys.self)",
			},
			Lines:  make([]string, 0, n),
			Footer: []string{"}"},
		},
	}
}

// Generate infers a type for every property of the named declaration and
// emits the CodingKeys, encode(to:) and init(from:) blocks. It fails on the
// first property that cannot be typed or is declared twice; no partial result
// is returned.
func Generate(declaration string, props []scanner.PropertyDeclaration, opts Options) (CodeBlockSet, error) {
	set := newBlockSet(len(props))
	seen := make(map[string]int, len(props))

	for _, p := range props {
		bare := unescape(p.Name)
		if first, dup := seen[bare]; dup {
			return CodeBlockSet{}, &DuplicatePropertyError{Declaration: declaration, Name: bare, FirstLine: first, Line: p.Line}
		}
		seen[bare] = p.Line

		typ, ok := InferType(p)
		if !ok {
			return CodeBlockSet{}, &TypeInferenceError{Declaration: declaration, Property: p}
		}

		set.EncodeBody.Lines = append(set.EncodeBody.Lines, EncodeLine(p.Name))
		set.DecodeBody.Lines = append(set.DecodeBody.Lines, DecodeLine(p.Name, typ))
		set.CodingKeys.Lines = append(set.CodingKeys.Lines, KeyLine(p.Name, WireKey(p.Name, opts)))
	}

	return set, nil
}

// WireKey returns the serialized key for a property name. Backticks around
// an escaped keyword are not part of the key.
func WireKey(name string, opts Options) string {
	name = unescape(name)
	if opts.MapSnakeCase {
		return common.ToSnakeCase(name)
	}
	return name
}

func unescape(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, "`"), "`")
}

func EncodeLine(name string) string {
	return fmt.Sprintf("try container.encode(%s, forKey: .%s)", name, name)
}

func DecodeLine(name string, typ InferredType) string {
	if typ.Optional {
		return fmt.Sprintf("%s = try container.decodeIfPresent(%s.self, forKey: .%s)", name, typ.DecodeName(), name)
	}
	return fmt.Sprintf("%s = try container.decode(%s.self, forKey: .%s)", name, typ.DecodeName(), name)
}

func KeyLine(name, wireKey string) string {
	return fmt.Sprintf("case %s = %q", name, wireKey)
}

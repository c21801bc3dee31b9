package generator

import (
	"github.com/Alia5/modelboiler/internal/codegen/generator/swift"
	"github.com/Alia5/modelboiler/internal/codegen/meta"
)

// Report describes what the scanner found and which types were inferred.
type Report struct {
	Declarations []DeclarationReport `json:"declarations" yaml:"declarations" toml:"declarations"`
}

type DeclarationReport struct {
	Name       string           `json:"name" yaml:"name" toml:"name"`
	Kind       string           `json:"kind" yaml:"kind" toml:"kind"`
	Repaired   bool             `json:"repaired,omitempty" yaml:"repaired,omitempty" toml:"repaired,omitempty"`
	Properties []PropertyReport `json:"properties" yaml:"properties" toml:"properties"`
}

type PropertyReport struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	WireKey  string `json:"wireKey" yaml:"wireKey" toml:"wireKey"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" toml:"optional,omitempty"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Line     int    `json:"line" yaml:"line" toml:"line"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Describe builds a Report. Unlike Generate it never fails: properties
// without an inferable type carry the error text instead.
func (g *Generator) Describe(md *meta.Metadata) Report {
	opts := g.settings.options()
	report := Report{Declarations: make([]DeclarationReport, 0, len(md.Declarations))}

	for _, d := range md.Declarations {
		dr := DeclarationReport{
			Name:       d.QualifiedName,
			Kind:       d.Kind,
			Repaired:   d.Repaired,
			Properties: make([]PropertyReport, 0, len(d.Properties)),
		}
		for _, p := range d.Properties {
			pr := PropertyReport{
				Name:    p.Name,
				WireKey: swift.WireKey(p.Name, opts),
				Line:    p.Line,
			}
			if typ, ok := swift.InferType(p); ok {
				pr.Type = typ.DecodeName()
				pr.Optional = typ.Optional
				pr.Source = string(typ.Source)
			} else {
				pr.Error = (&swift.TypeInferenceError{Declaration: d.QualifiedName, Property: p}).Error()
			}
			dr.Properties = append(dr.Properties, pr)
		}
		report.Declarations = append(report.Declarations, dr)
	}
	return report
}

package meta

import "github.com/Alia5/modelboiler/internal/codegen/scanner"

// Metadata holds all scanned information needed for code generation
// Shared between the generator orchestrator and the Swift pipeline.
type Metadata struct {
	Source       string                // Raw source text that was scanned
	Declarations []scanner.Declaration // struct / final class declarations in pre-order
}

// Properties returns the total number of stored properties across all declarations.
func (m *Metadata) Properties() int {
	n := 0
	for _, d := range m.Declarations {
		n += len(d.Properties)
	}
	return n
}

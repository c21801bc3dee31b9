package swift

import (
	"fmt"

	"github.com/Alia5/modelboiler/internal/codegen/scanner"
)

// TypeInferenceError reports a property whose type could not be deduced.
type TypeInferenceError struct {
	Declaration string
	Property    scanner.PropertyDeclaration
}

func (e *TypeInferenceError) Error() string {
	where := e.Declaration + "." + e.Property.Name
	if e.Property.Line > 0 {
		where = fmt.Sprintf("%s (line %d)", where, e.Property.Line)
	}
	if e.Property.InitializedValue == "" {
		return fmt.Sprintf("could not generate type for %s: no type annotation or initial value", where)
	}
	return fmt.Sprintf("could not generate type for %s from value %q", where, e.Property.InitializedValue)
}

// DuplicatePropertyError reports two properties with the same name in one declaration.
type DuplicatePropertyError struct {
	Declaration string
	Name        string
	FirstLine   int
	Line        int
}

func (e *DuplicatePropertyError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("duplicate property %s.%s", e.Declaration, e.Name)
	}
	return fmt.Sprintf("duplicate property %s.%s on line %d (first declared on line %d)", e.Declaration, e.Name, e.Line, e.FirstLine)
}

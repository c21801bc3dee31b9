package swift

import (
	"strconv"
	"strings"

	"github.com/Alia5/modelboiler/internal/codegen/common"
	"github.com/Alia5/modelboiler/internal/codegen/scanner"
)

// InferenceSource tells where an InferredType came from.
type InferenceSource string

const (
	FromAnnotation  InferenceSource = "annotation"
	FromInitializer InferenceSource = "initializer"
)

// Primitive type names produced from initializer literals.
const (
	TypeString = "String"
	TypeInt    = "Int"
	TypeDouble = "Double"
	TypeBool   = "Bool"
)

// InferredType is the Swift type deduced for one property.
type InferredType struct {
	Name     string          // Type as written or inferred (e.g., "Int?", "Color")
	Optional bool            // Name ends with '?'
	Source   InferenceSource // annotation or initializer
}

// DecodeName returns the type to pass to decode/decodeIfPresent, without the
// optional marker.
func (t InferredType) DecodeName() string {
	base, _ := common.NormalizeSwiftType(t.Name)
	return base
}

// InferType deduces the type of a property. An explicit annotation wins;
// otherwise the initializer is matched in order: string literal, boolean
// literal, integer, floating point number, call of a type initializer.
func InferType(p scanner.PropertyDeclaration) (InferredType, bool) {
	if annotation := strings.TrimSpace(p.TypeAnnotation); annotation != "" {
		_, optional := common.NormalizeSwiftType(annotation)
		return InferredType{Name: annotation, Optional: optional, Source: FromAnnotation}, true
	}

	value := strings.TrimSpace(p.InitializedValue)
	if value == "" {
		return InferredType{}, false
	}

	name := inferFromValue(value)
	if name == "" {
		return InferredType{}, false
	}
	return InferredType{Name: name, Source: FromInitializer}, true
}

func inferFromValue(value string) string {
	switch {
	case strings.Contains(value, `"`):
		return TypeString
	case value == "true" || value == "false":
		return TypeBool
	}
	number := stripDigitSeparators(value)
	if _, err := strconv.ParseInt(number, 10, 64); err == nil {
		return TypeInt
	}
	if strings.Contains(number, ".") {
		if _, err := strconv.ParseFloat(number, 64); err == nil {
			return TypeDouble
		}
	}
	return customTypeName(value)
}

// stripDigitSeparators removes the underscores Swift allows between digits
// (1_000, 3.141_592). A value that does not start with a digit is returned
// unchanged, so identifiers such as _x are never read as numbers.
func stripDigitSeparators(value string) string {
	digits := strings.TrimPrefix(value, "-")
	if digits == "" || digits[0] < '0' || digits[0] > '9' {
		return value
	}
	return strings.ReplaceAll(value, "_", "")
}

// customTypeName extracts "Color" from "Color()" or "Color(.red)".
func customTypeName(value string) string {
	open := strings.IndexByte(value, '(')
	if open <= 0 || strings.LastIndexByte(value, ')') < open {
		return ""
	}
	return strings.TrimSpace(value[:open])
}

package common

import "strings"

// NormalizeSwiftType strips optional markers from a Swift type string
// and reports whether the original type was optional.
// Examples: "Int?" -> ("Int", true), "[String]" -> ("[String]", false)
func NormalizeSwiftType(swiftType string) (base string, isOptional bool) {
	base = strings.TrimSpace(swiftType)
	if strings.HasSuffix(base, "?") {
		base = strings.TrimRight(base, "?")
		isOptional = true
	}
	return
}

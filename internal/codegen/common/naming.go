package common

import (
	"strings"
	"unicode"
)

// SplitWords breaks an identifier into its words, scanning left to right.
// A word is a run of lowercase letters, one uppercase letter followed by
// lowercase letters, or a run of uppercase letters. Within an uppercase run
// the last letter is left for the next word when a lowercase letter follows
// it ("HTTPResponse" -> "HTTP", "Response"). Digits stay with the word they
// follow. Any other rune is skipped.
func SplitWords(s string) []string {
	runes := []rune(s)
	var words []string
	for i := 0; i < len(runes); {
		n := wordLen(runes[i:])
		if n == 0 {
			i++
			continue
		}
		words = append(words, string(runes[i:i+n]))
		i += n
	}
	return words
}

func wordLen(r []rune) int {
	n := 0
	switch {
	case unicode.IsLower(r[0]) || unicode.IsDigit(r[0]):
		n = 1
	case unicode.IsUpper(r[0]) && len(r) > 1 && unicode.IsLower(r[1]):
		n = 2
	case unicode.IsUpper(r[0]):
		n = 1
		for n < len(r) && unicode.IsUpper(r[n]) {
			n++
		}
		if n > 1 && n < len(r) && unicode.IsLower(r[n]) {
			return n - 1
		}
		for n < len(r) && unicode.IsDigit(r[n]) {
			n++
		}
		return n
	default:
		return 0
	}
	for n < len(r) && (unicode.IsLower(r[n]) || unicode.IsDigit(r[n])) {
		n++
	}
	return n
}

// ToSnakeCase converts a camelCase identifier into a lowercase snake_case one.
// Examples: "userID" -> "user_id", "HTTPResponse" -> "http_response".
func ToSnakeCase(s string) string {
	words := SplitWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Trim(strings.Join(words, "_"), "_")
}

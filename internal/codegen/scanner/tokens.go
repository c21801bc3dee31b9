package scanner

import (
	"strings"
	tscan "text/scanner"
)

type token struct {
	kind  rune // tscan.Ident, tscan.Int, tscan.Float, tscan.String, tscan.EOF or the literal rune
	text  string
	start int
	end   int
	line  int
}

func (t token) is(r rune) bool { return t.kind == r }

func (t token) isIdent(name string) bool { return t.kind == tscan.Ident && t.text == name }

type tokenizer struct {
	s   tscan.Scanner
	err *StructuralError
}

// tokenize splits Swift source into Go-like tokens. Comments are dropped and
// newlines are kept since they terminate statements. String literals are
// read here rather than by text/scanner so that multi-line ("""), raw (#"")
// and interpolated forms come out as one token.
func tokenize(src string) ([]token, error) {
	z := &tokenizer{}
	s := &z.s
	s.Init(strings.NewReader(src))
	s.Mode = tscan.ScanIdents | tscan.ScanInts | tscan.ScanFloats | tscan.ScanComments | tscan.SkipComments
	s.Whitespace = 1<<'\t' | 1<<'\r' | 1<<' '
	s.Error = func(s *tscan.Scanner, msg string) {
		// Number literals follow Swift rules (1__000 is valid) and are
		// checked during type inference instead.
		if z.err == nil && !numberLiteralError(msg) {
			z.err = &StructuralError{Reason: msg, Line: s.Pos().Line}
		}
	}

	var toks []token
	for {
		kind := s.Scan()
		if z.err != nil {
			return nil, z.err
		}
		pos := s.Position
		if kind == tscan.EOF {
			toks = append(toks, token{kind: tscan.EOF, start: len(src), end: len(src), line: s.Pos().Line})
			return toks, nil
		}

		switch {
		case kind == '"':
			if !z.readString(0) {
				return nil, &StructuralError{Reason: "unterminated string literal", Line: pos.Line}
			}
			kind = tscan.String
		case kind == '#' && (s.Peek() == '"' || s.Peek() == '#'):
			hashes := 1
			for s.Peek() == '#' {
				s.Next()
				hashes++
			}
			if s.Peek() == '"' {
				s.Next()
				if !z.readString(hashes) {
					return nil, &StructuralError{Reason: "unterminated string literal", Line: pos.Line}
				}
				kind = tscan.String
			}
		}

		end := s.Pos().Offset
		toks = append(toks, token{
			kind:  kind,
			text:  src[pos.Offset:end],
			start: pos.Offset,
			end:   end,
			line:  pos.Line,
		})
	}
}

// readString consumes the rest of a string literal whose opening quote has
// been read. hashes is the number of '#' delimiting a raw string.
func (z *tokenizer) readString(hashes int) bool {
	s := &z.s
	multi := false
	if s.Peek() == '"' {
		s.Next()
		if s.Peek() != '"' {
			return z.matchHashes(hashes)
		}
		s.Next()
		multi = true
	}

	for {
		switch s.Next() {
		case tscan.EOF:
			return false
		case '\n':
			if !multi {
				return false
			}
		case '\\':
			if !z.matchHashes(hashes) {
				continue
			}
			if s.Peek() == '(' {
				s.Next()
				if !z.readInterpolation() {
					return false
				}
				continue
			}
			if s.Next() == tscan.EOF {
				return false
			}
		case '"':
			if multi {
				if s.Peek() != '"' {
					continue
				}
				s.Next()
				if s.Peek() != '"' {
					continue
				}
				s.Next()
			}
			if z.matchHashes(hashes) {
				return true
			}
		}
	}
}

// readInterpolation consumes a \( ... ) segment, including nested strings.
func (z *tokenizer) readInterpolation() bool {
	s := &z.s
	depth := 1
	for {
		switch s.Next() {
		case tscan.EOF:
			return false
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return true
			}
		case '"':
			if !z.readString(0) {
				return false
			}
		}
	}
}

func (z *tokenizer) matchHashes(n int) bool {
	for i := 0; i < n; i++ {
		if z.s.Peek() != '#' {
			return false
		}
		z.s.Next()
	}
	return true
}

func numberLiteralError(msg string) bool {
	return strings.Contains(msg, "digit") || strings.Contains(msg, "literal") || strings.Contains(msg, "mantissa")
}

package scanner

import (
	"fmt"
	"strings"
	tscan "text/scanner"
)

// PropertyDeclaration is one stored property found in a declaration body.
type PropertyDeclaration struct {
	Name             string `json:"name"`                       // Swift accessor name as written (e.g., "userID", "`default`")
	TypeAnnotation   string `json:"typeAnnotation,omitempty"`   // Explicit type as written (e.g., "Int?"), empty when absent
	InitializedValue string `json:"initializedValue,omitempty"` // Default value literal (e.g., "Color()"), empty when absent
	Line             int    `json:"line"`                       // 1-based source line
}

// Declaration is a struct or final class found in the scanned source.
type Declaration struct {
	Name          string                `json:"name"`          // Type name (e.g., "Inner")
	QualifiedName string                `json:"qualifiedName"` // Outer names joined with "." (e.g., "Outer.Inner")
	Kind          string                `json:"kind"`          // "struct" or "class"
	Properties    []PropertyDeclaration `json:"properties"`    // Stored properties in source order
	Start         int                   `json:"start"`         // Byte offset of the declaration keyword or its first modifier
	End           int                   `json:"end"`           // Byte offset just past the closing brace
	Repaired      bool                  `json:"repaired"`      // Closing brace was missing and has been assumed at end of input
}

// StructuralError reports source that cannot be split into declarations.
type StructuralError struct {
	Reason string
	Line   int
}

func (e *StructuralError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Scan extracts struct and final class declarations from Swift source.
// Nested declarations follow their parent, so the result is in pre-order.
func Scan(src string) ([]Declaration, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if _, err := p.parseScope(nil, -1); err != nil {
		return nil, err
	}
	if len(p.decls) == 0 {
		return nil, &StructuralError{Reason: "no struct or final class declaration found"}
	}
	return p.decls, nil
}

var modifiers = map[string]bool{
	"public": true, "private": true, "fileprivate": true, "internal": true, "open": true,
	"final": true, "static": true, "lazy": true, "weak": true, "unowned": true,
	"override": true, "mutating": true, "nonmutating": true, "required": true,
	"convenience": true, "dynamic": true, "optional": true, "indirect": true,
	"nonisolated": true, "package": true, "prefix": true, "postfix": true, "infix": true,
}

type parser struct {
	src   string
	toks  []token
	pos   int
	decls []Declaration
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tscan.EOF {
		p.pos++
	}
	return t
}

// parseScope reads members until the closing brace of the scope or EOF.
// idx is the index of the declaration collecting properties, or -1 for
// scopes that only contribute nested declarations.
func (p *parser) parseScope(path []string, idx int) (closed bool, err error) {
	for {
		t := p.peek()
		switch {
		case t.is(tscan.EOF):
			return false, nil
		case t.is('}'):
			p.next()
			if path != nil {
				return true, nil
			}
		case t.is('\n'), t.is(';'):
			p.next()
		case t.is('{'):
			p.skipBlock()
		case t.is('#'):
			p.skipLine()
		default:
			if err := p.parseMember(path, idx); err != nil {
				return false, err
			}
		}
	}
}

type memberModifiers struct {
	final    bool
	static   bool
	lazy     bool
	startOff int
}

func (p *parser) parseMember(path []string, idx int) error {
	mods := memberModifiers{startOff: p.peek().start}
	for {
		t := p.peek()
		switch {
		case t.is('@'):
			p.skipAttribute()
			continue
		case t.kind == tscan.Ident && modifiers[t.text]:
			p.next()
			switch t.text {
			case "final":
				mods.final = true
			case "static":
				mods.static = true
			case "lazy":
				mods.lazy = true
			}
			if p.peek().is('(') {
				p.skipGroup() // private(set)
			}
			continue
		case t.isIdent("class") && p.classIsModifier():
			p.next()
			mods.static = true
			continue
		}
		break
	}

	kw := p.peek()
	if kw.kind != tscan.Ident {
		p.skipStatement()
		return nil
	}

	switch kw.text {
	case "struct":
		return p.parseTypeDecl("struct", path, mods)
	case "class":
		if !mods.final {
			return &StructuralError{Reason: "class should be declared as final", Line: kw.line}
		}
		return p.parseTypeDecl("class", path, mods)
	case "enum", "extension", "actor":
		return p.parseContainer(path)
	case "protocol":
		p.skipToBodyAndBlock()
	case "let", "var":
		p.next()
		if idx < 0 || mods.static || mods.lazy {
			p.skipStatement()
			return nil
		}
		p.parseBinding(idx)
	case "func", "init", "deinit", "subscript":
		p.skipToBodyAndBlock()
	default:
		p.skipStatement()
	}
	return nil
}

// classIsModifier reports whether the "class" at the cursor qualifies a
// member (class var, class func) rather than introducing a type.
func (p *parser) classIsModifier() bool {
	n := p.peekAt(1)
	if n.kind != tscan.Ident {
		return false
	}
	switch n.text {
	case "var", "let", "func", "subscript":
		return true
	}
	return modifiers[n.text]
}

func (p *parser) parseTypeDecl(kind string, path []string, mods memberModifiers) error {
	p.next() // struct / class
	name := p.identifier()
	if name == "" {
		p.skipStatement()
		return nil
	}

	qualified := append(append([]string{}, path...), name)
	p.decls = append(p.decls, Declaration{
		Name:          name,
		QualifiedName: strings.Join(qualified, "."),
		Kind:          kind,
		Properties:    []PropertyDeclaration{},
		Start:         mods.startOff,
	})
	idx := len(p.decls) - 1

	if !p.skipToOpenBrace() {
		p.decls[idx].End = len(p.src)
		p.decls[idx].Repaired = true
		return nil
	}
	closed, err := p.parseScope(qualified, idx)
	if err != nil {
		return err
	}
	p.decls[idx].Repaired = !closed
	if closed {
		p.decls[idx].End = p.toks[p.pos-1].end
	} else {
		p.decls[idx].End = len(p.src)
	}
	return nil
}

// parseContainer walks enum and extension bodies for nested declarations.
func (p *parser) parseContainer(path []string) error {
	p.next()
	name := p.qualifiedIdentifier()
	if !p.skipToOpenBrace() {
		return nil
	}
	inner := append([]string{}, path...)
	if name != "" {
		inner = append(inner, name)
	}
	_, err := p.parseScope(inner, -1)
	return err
}

// parseBinding reads the patterns of a let/var statement. The cursor is just
// past the keyword.
func (p *parser) parseBinding(idx int) {
	var untyped []int
	for {
		nameTok := p.peek()
		name := p.propertyName()
		if name == "" {
			p.skipStatement()
			return
		}
		prop := PropertyDeclaration{Name: name, Line: nameTok.line}

		if p.peek().is(':') {
			p.next()
			prop.TypeAnnotation = p.capture(true, func(t token) bool {
				return t.is('=') || t.is('{') || t.is(',') || t.is('\n') || t.is(';') || t.is('}')
			})
		}
		if p.peek().is('=') {
			p.next()
			prop.InitializedValue = p.capture(false, func(t token) bool {
				if t.is('{') {
					return p.observerBlockAhead()
				}
				return t.is(',') || t.is('\n') || t.is(';') || t.is('}')
			})
		}

		computed := false
		if p.peek().is('{') {
			computed = !p.observerBlockAhead()
			p.skipBlock()
		}

		if !computed {
			d := &p.decls[idx]
			d.Properties = append(d.Properties, prop)
			pi := len(d.Properties) - 1
			switch {
			case prop.TypeAnnotation != "":
				for _, u := range untyped {
					d.Properties[u].TypeAnnotation = prop.TypeAnnotation
				}
				untyped = untyped[:0]
			case prop.InitializedValue == "":
				untyped = append(untyped, pi)
			}
		}

		if !p.peek().is(',') {
			break
		}
		p.next()
	}
	p.skipStatement()
}

// observerBlockAhead reports whether the '{' at the cursor opens a
// willSet/didSet block rather than a getter or closure.
func (p *parser) observerBlockAhead() bool {
	for n := 1; ; n++ {
		t := p.peekAt(n)
		if t.is('\n') {
			continue
		}
		return t.isIdent("willSet") || t.isIdent("didSet")
	}
}

// capture consumes tokens until stop matches at nesting depth zero and
// returns the covered source text verbatim. Angle brackets only nest in
// type position.
func (p *parser) capture(angles bool, stop func(token) bool) string {
	start, end := -1, -1
	depth := 0
	var prev token
	for {
		t := p.peek()
		if t.is(tscan.EOF) {
			break
		}
		if depth == 0 && stop(t) {
			break
		}
		switch {
		case t.is('('), t.is('['), t.is('{'):
			depth++
		case t.is(')'), t.is(']'), t.is('}'):
			if depth == 0 {
				break
			}
			depth--
		case angles && t.is('<'):
			depth++
		case angles && t.is('>') && !(prev.is('-') && prev.end == t.start):
			if depth > 0 {
				depth--
			}
		}
		if start < 0 {
			start = t.start
		}
		end = t.end
		prev = p.next()
	}
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(p.src[start:end])
}

func (p *parser) identifier() string {
	t := p.peek()
	if t.is('`') {
		if p.peekAt(1).kind == tscan.Ident && p.peekAt(2).is('`') {
			p.next()
			name := p.next().text
			p.next()
			return name
		}
		return ""
	}
	if t.kind != tscan.Ident {
		return ""
	}
	return p.next().text
}

// propertyName reads an identifier and keeps backticks around an escaped
// keyword such as `default`, since the name is emitted back into Swift code.
func (p *parser) propertyName() string {
	escaped := p.peek().is('`')
	name := p.identifier()
	if escaped && name != "" {
		return "`" + name + "`"
	}
	return name
}

// qualifiedIdentifier reads a dotted name such as "Outer.Inner".
func (p *parser) qualifiedIdentifier() string {
	parts := []string{}
	for {
		name := p.identifier()
		if name == "" {
			break
		}
		parts = append(parts, name)
		if !p.peek().is('.') {
			break
		}
		p.next()
	}
	return strings.Join(parts, ".")
}

// skipToOpenBrace advances past the '{' that opens a type body. It stops
// without consuming at a '}' that belongs to the enclosing scope.
func (p *parser) skipToOpenBrace() bool {
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.is(tscan.EOF):
			return false
		case t.is('{') && depth == 0:
			p.next()
			return true
		case t.is('}') && depth == 0:
			return false
		case t.is('('), t.is('['):
			depth++
		case t.is(')'), t.is(']'):
			if depth > 0 {
				depth--
			}
		}
		p.next()
	}
}

func (p *parser) skipToBodyAndBlock() {
	if p.skipToOpenBrace() {
		p.pos--
		p.skipBlock()
	}
}

// skipBlock consumes a balanced {...} block starting at the cursor.
func (p *parser) skipBlock() bool {
	depth := 0
	for {
		t := p.next()
		switch {
		case t.is(tscan.EOF):
			return false
		case t.is('{'):
			depth++
		case t.is('}'):
			depth--
			if depth == 0 {
				return true
			}
		}
	}
}

// skipGroup consumes a balanced (...) group starting at the cursor.
func (p *parser) skipGroup() {
	depth := 0
	for {
		t := p.next()
		switch {
		case t.is(tscan.EOF):
			return
		case t.is('('):
			depth++
		case t.is(')'):
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func (p *parser) skipAttribute() {
	p.next() // @
	p.qualifiedIdentifier()
	if p.peek().is('(') {
		p.skipGroup()
	}
}

// skipStatement consumes the rest of a statement, including trailing
// blocks, and stops before a '}' closing the enclosing scope.
func (p *parser) skipStatement() {
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.is(tscan.EOF):
			return
		case depth == 0 && (t.is('\n') || t.is(';')):
			p.next()
			return
		case t.is('{'):
			p.skipBlock()
			continue
		case t.is('}'):
			if depth == 0 {
				return
			}
		case t.is('('), t.is('['):
			depth++
		case t.is(')'), t.is(']'):
			if depth > 0 {
				depth--
			}
		}
		p.next()
	}
}

func (p *parser) skipLine() {
	for {
		t := p.next()
		if t.is('\n') || t.is(tscan.EOF) {
			return
		}
	}
}

package scanner

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyNames(d Declaration) []string {
	names := make([]string, 0, len(d.Properties))
	for _, p := range d.Properties {
		names = append(names, p.Name)
	}
	return names
}

func TestScanSimpleStruct(t *testing.T) {
	src := `struct User: Codable {
    let id: Int
    var nickname: String?
    var score = 3.14
    var color = Color(.red)
    let title = "Hello, { world }"
}`

	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 1, spew.Sdump(decls))

	d := decls[0]
	assert.Equal(t, "User", d.Name)
	assert.Equal(t, "User", d.QualifiedName)
	assert.Equal(t, "struct", d.Kind)
	assert.False(t, d.Repaired)
	assert.Equal(t, 0, d.Start)
	assert.Equal(t, len(src), d.End)

	assert.Equal(t, []PropertyDeclaration{
		{Name: "id", TypeAnnotation: "Int", Line: 2},
		{Name: "nickname", TypeAnnotation: "String?", Line: 3},
		{Name: "score", InitializedValue: "3.14", Line: 4},
		{Name: "color", InitializedValue: "Color(.red)", Line: 5},
		{Name: "title", InitializedValue: `"Hello, { world }"`, Line: 6},
	}, d.Properties)
}

func TestScanAnnotationWithInitializer(t *testing.T) {
	decls, err := Scan("struct A {\n  var tags: [String: Int] = [:]\n  var handler: () -> Void = {}\n  var box: Box<Int, String>? = nil\n}")
	require.NoError(t, err)
	require.Len(t, decls, 1)

	props := decls[0].Properties
	require.Len(t, props, 3, spew.Sdump(props))
	assert.Equal(t, "[String: Int]", props[0].TypeAnnotation)
	assert.Equal(t, "[:]", props[0].InitializedValue)
	assert.Equal(t, "() -> Void", props[1].TypeAnnotation)
	assert.Equal(t, "{}", props[1].InitializedValue)
	assert.Equal(t, "Box<Int, String>?", props[2].TypeAnnotation)
	assert.Equal(t, "nil", props[2].InitializedValue)
}

func TestScanSkipsNonStoredMembers(t *testing.T) {
	src := `
// A model with some noise.
public struct Profile {
    /* block comment with struct Fake { } */
    static let shared = Profile()
    class var kind: String { "profile" }
    lazy var cache = [String]()
    @Published var isOn = false
    private(set) var count: Int = 0 {
        didSet { print(count) }
    }
    var fullName: String {
        return first + " " + last
    }
    var computedWithGet: Int {
        get { 1 }
        set { }
    }
    var first: String
    var last: String

    init(first: String, last: String) {
        self.first = first
        self.last = last
    }

    func greet() -> String {
        let local = "x"
        return "Hi \(local)"
    }

    typealias ID = Int
    #if DEBUG
    #endif
}
`
	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"isOn", "count", "first", "last"}, propertyNames(decls[0]), spew.Sdump(decls[0]))
	assert.Equal(t, "Int", decls[0].Properties[1].TypeAnnotation)
	assert.Equal(t, "0", decls[0].Properties[1].InitializedValue)
}

func TestScanMultipleBindings(t *testing.T) {
	decls, err := Scan("struct P {\n  var x, y: Double\n  let a = 1, b = \"two\"\n}")
	require.NoError(t, err)
	require.Len(t, decls, 1)

	assert.Equal(t, []PropertyDeclaration{
		{Name: "x", TypeAnnotation: "Double", Line: 2},
		{Name: "y", TypeAnnotation: "Double", Line: 2},
		{Name: "a", InitializedValue: "1", Line: 3},
		{Name: "b", InitializedValue: `"two"`, Line: 3},
	}, decls[0].Properties)
}

func TestScanBacktickNames(t *testing.T) {
	decls, err := Scan("struct E {\n  let `default`: Bool\n  var `self` = 1, plain = 2\n}")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"`default`", "`self`", "plain"}, propertyNames(decls[0]))
}

func TestScanStringLiterals(t *testing.T) {
	src := "struct A {\n" +
		"    let banner = \"\"\"\n" +
		"    Hello {\n" +
		"    \"\"\"\n" +
		"    let pattern = #\"\\d+\"{\"#\n" +
		"    var greeting = \"Hi \\(name.isEmpty ? \"}\" : name)\"\n" +
		"    let id: Int\n" +
		"    var name: String?\n" +
		"}"

	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 1)

	assert.Equal(t, []PropertyDeclaration{
		{Name: "banner", InitializedValue: "\"\"\"\n    Hello {\n    \"\"\"", Line: 2},
		{Name: "pattern", InitializedValue: `#"\d+"{"#`, Line: 5},
		{Name: "greeting", InitializedValue: `"Hi \(name.isEmpty ? "}" : name)"`, Line: 6},
		{Name: "id", TypeAnnotation: "Int", Line: 7},
		{Name: "name", TypeAnnotation: "String?", Line: 8},
	}, decls[0].Properties, spew.Sdump(decls[0].Properties))
	assert.False(t, decls[0].Repaired)
}

func TestScanTokenizerErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{
			name:   "unterminated string",
			src:    "struct A {\n  let s = \"abc\n  let x: Int\n}",
			reason: "unterminated string literal",
		},
		{
			name:   "unterminated multi-line string",
			src:    "struct A {\n  let s = \"\"\"\n  text\n  let x: Int\n}",
			reason: "unterminated string literal",
		},
		{
			name:   "unterminated raw string",
			src:    "struct A {\n  let s = #\"abc\"\n}",
			reason: "unterminated string literal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := Scan(tt.src)
			require.Error(t, err)
			assert.Nil(t, decls)

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.reason, se.Reason)
			assert.Equal(t, 2, se.Line)
		})
	}

	_, err := Scan("struct A {\n  /* open\n  let x: Int\n}")
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "comment not terminated", se.Reason)
}

func TestScanLenientNumberLiterals(t *testing.T) {
	decls, err := Scan("struct A {\n  var big = 1__000\n}")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "1__000", decls[0].Properties[0].InitializedValue)
}

func TestScanNestedDeclarations(t *testing.T) {
	src := `struct Outer {
    let id: Int
    struct Inner {
        let name: String
        final class Deep {
            var flag = true
        }
    }
    let after: String
}

final class Second {
    var value = 1
}
`
	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 4, spew.Sdump(decls))

	assert.Equal(t, "Outer", decls[0].QualifiedName)
	assert.Equal(t, []string{"id", "after"}, propertyNames(decls[0]))

	assert.Equal(t, "Outer.Inner", decls[1].QualifiedName)
	assert.Equal(t, "Inner", decls[1].Name)
	assert.Equal(t, []string{"name"}, propertyNames(decls[1]))

	assert.Equal(t, "Outer.Inner.Deep", decls[2].QualifiedName)
	assert.Equal(t, "class", decls[2].Kind)
	assert.Equal(t, []string{"flag"}, propertyNames(decls[2]))

	assert.Equal(t, "Second", decls[3].QualifiedName)
	assert.Equal(t, []string{"value"}, propertyNames(decls[3]))

	for _, d := range decls {
		assert.False(t, d.Repaired, d.QualifiedName)
		assert.Less(t, d.Start, d.End, d.QualifiedName)
	}
	assert.Less(t, decls[0].End, decls[3].Start)
}

func TestScanContainersQualifyNestedTypes(t *testing.T) {
	src := `enum API {
    case v1, v2
    static let base = "https://example.com"
    struct User {
        let id: Int
    }
}

extension API.User {
    struct Settings {
        var theme: String?
    }
}

protocol Named {
    var name: String { get }
}
`
	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 2, spew.Sdump(decls))
	assert.Equal(t, "API.User", decls[0].QualifiedName)
	assert.Equal(t, []string{"id"}, propertyNames(decls[0]))
	assert.Equal(t, "API.User.Settings", decls[1].QualifiedName)
	assert.Equal(t, []string{"theme"}, propertyNames(decls[1]))
}

func TestScanRepairsMissingBraces(t *testing.T) {
	src := "struct Broken {\n  let id: Int\n  struct Child {\n    let name: String\n"

	decls, err := Scan(src)
	require.NoError(t, err)
	require.Len(t, decls, 2)
	for _, d := range decls {
		assert.True(t, d.Repaired, d.QualifiedName)
		assert.Equal(t, len(src), d.End)
	}
	assert.Equal(t, []string{"id"}, propertyNames(decls[0]))
	assert.Equal(t, []string{"name"}, propertyNames(decls[1]))
}

func TestScanIgnoresSurplusClosingBraces(t *testing.T) {
	decls, err := Scan("}\nstruct A {\n  let x: Int\n}\n}}")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"x"}, propertyNames(decls[0]))
}

func TestScanStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
		line   int
	}{
		{
			name:   "non final class",
			src:    "\nclass Model {\n  let id: Int\n}",
			reason: "class should be declared as final",
			line:   2,
		},
		{
			name:   "non final nested class",
			src:    "struct A {\n  public class B {}\n}",
			reason: "class should be declared as final",
			line:   2,
		},
		{
			name:   "no declarations",
			src:    "let x = 5\nprint(x)",
			reason: "no struct or final class declaration found",
		},
		{
			name:   "empty input",
			src:    "",
			reason: "no struct or final class declaration found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls, err := Scan(tt.src)
			require.Error(t, err)
			assert.Nil(t, decls)

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.reason, se.Reason)
			assert.Equal(t, tt.line, se.Line)
		})
	}
}

func TestStructuralErrorMessage(t *testing.T) {
	assert.Equal(t, "line 3: class should be declared as final",
		(&StructuralError{Reason: "class should be declared as final", Line: 3}).Error())
	assert.Equal(t, "no struct or final class declaration found",
		(&StructuralError{Reason: "no struct or final class declaration found"}).Error())
}

func TestScanClassMembersAreNotDeclarations(t *testing.T) {
	decls, err := Scan("final class Cache {\n  class func make() -> Cache { Cache() }\n  var hits = 0\n}")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, []string{"hits"}, propertyNames(decls[0]))
}

// Package ir defines the intermediate representation jbind generates from.
// Providers build these descriptors from definition files or Go source;
// generators turn them into Java and Go source.
package ir

import (
	"strconv"
	"strings"
)

// NativeType identifies the Go type an enumeration binds to.
type NativeType struct {
	// ImportPath is the package the type is declared in.
	// Empty when the type lives in the generated native package itself.
	ImportPath string

	// Package is the package name used to qualify identifiers.
	// Defaults to the last element of ImportPath.
	Package string

	// Name is the type identifier, e.g. "Color".
	Name string
}

// IsZero returns true if the type reference is empty.
func (t NativeType) IsZero() bool {
	return t.ImportPath == "" && t.Package == "" && t.Name == ""
}

// PackageName returns the name used to qualify identifiers from ImportPath.
func (t NativeType) PackageName() string {
	if t.Package != "" {
		return t.Package
	}
	if t.ImportPath == "" {
		return ""
	}
	return t.ImportPath[strings.LastIndex(t.ImportPath, "/")+1:]
}

// Qualify returns ident as referenced from the generated native package.
func (t NativeType) Qualify(ident string) string {
	if pkg := t.PackageName(); pkg != "" {
		return pkg + "." + ident
	}
	return ident
}

// QualifiedName returns the Go type expression, e.g. "example.Color".
func (t NativeType) QualifiedName() string {
	return t.Qualify(t.Name)
}

// Identity returns the string used to key the type in the conversion graph.
// It is unique across packages, e.g. "github.com/acme/example.Color".
func (t NativeType) Identity() string {
	if t.ImportPath == "" {
		return t.Name
	}
	return t.ImportPath + "." + t.Name
}

// Documentation holds documentation comments for an enumeration or item.
type Documentation struct {
	// Summary is the first sentence or paragraph.
	Summary string

	// Body is the complete documentation text, including the summary.
	// Lines are separated by "\n".
	Body string

	// Deprecated is non-nil if the symbol is marked deprecated.
	// The string value is the deprecation message (may be empty).
	Deprecated *string
}

// IsZero returns true if the documentation is empty.
func (d Documentation) IsZero() bool {
	return d.Summary == "" && d.Body == "" && d.Deprecated == nil
}

// Lines returns the body split into lines, or nil when the body is empty.
func (d Documentation) Lines() []string {
	if d.Body == "" {
		return nil
	}
	return strings.Split(d.Body, "\n")
}

// Source represents a location in the definition the enumeration came from.
type Source struct {
	File   string
	Line   int
	Column int
}

// IsZero returns true if the source location is empty.
func (s Source) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Column == 0
}

// String formats the location as file:line:column, omitting unknown parts.
func (s Source) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	var b strings.Builder
	b.WriteString(s.File)
	if s.Line > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(s.Line))
		if s.Column > 0 {
			b.WriteString(":")
			b.WriteString(strconv.Itoa(s.Column))
		}
	}
	return b.String()
}

// Warning represents a non-fatal issue encountered during generation.
type Warning struct {
	// Code is a machine-readable warning identifier.
	Code string

	// Message is a human-readable description.
	Message string

	// Source is the location that triggered the warning, if applicable.
	Source *Source

	// TypeName is the type that triggered the warning, if applicable.
	TypeName string
}

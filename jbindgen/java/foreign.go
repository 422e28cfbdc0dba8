// Package java generates the Java side of jbind bindings together with the
// Go glue that marshals values across JNI, and registers the resulting
// conversions in the build's conversion graph.
package java

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/sink"
)

const (
	generatedHeader = "// Automatically generated by jbind\n"
	indent          = "    "
)

// FullClassName returns the dotted Java name of a class in pkg.
func FullClassName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// InternalClassName returns the JNI internal form of a dotted class name,
// e.g. "com/example/Color".
func InternalClassName(fullName string) string {
	return strings.ReplaceAll(fullName, ".", "/")
}

// EnumClassPath returns the path of the Java source for an enum, relative to
// the output directory.
func EnumClassPath(name string) string {
	return name + ".java"
}

// RenderEnumClass renders the Java enum for t in package pkg.
//
// Every constant carries its ordinal; fromInt maps each ordinal back to its
// constant and throws for anything else.
func RenderEnumClass(pkg string, t *OrdinalTable) []byte {
	var buf bytes.Buffer

	buf.WriteString(generatedHeader)
	if pkg != "" {
		fmt.Fprintf(&buf, "package %s;\n", pkg)
	}
	buf.WriteString("\n")

	buf.WriteString(DocComment(t.Doc, ""))
	fmt.Fprintf(&buf, "public enum %s {\n", t.Name)

	if len(t.Rows) == 0 {
		buf.WriteString(indent + ";\n")
	}
	for i, row := range t.Rows {
		buf.WriteString(DocComment(row.Doc, indent))
		separator := ","
		if i == len(t.Rows)-1 {
			separator = ";"
		}
		fmt.Fprintf(&buf, "%s%s(%d)%s\n", indent, row.Foreign, row.Ordinal, separator)
	}

	fmt.Fprintf(&buf, `
    private final int value;
    %[1]s(int value) {
        this.value = value;
    }
    public final int getValue() { return value; }
    /*package*/ static %[1]s fromInt(int x) {
        switch (x) {
`, t.Name)

	for _, row := range t.Rows {
		fmt.Fprintf(&buf, "            case %d: return %s;\n", row.Ordinal, row.Foreign)
	}

	fmt.Fprintf(&buf, `            default: throw new Error("Invalid value for enum %s: " + x);
        }
    }
}
`, t.Name)

	return buf.Bytes()
}

// WriteEnumClass renders the Java enum for t and writes it through files.
// Unchanged content is not rewritten. A write failure is reported as a
// diagnostic at the enum's source location.
func WriteEnumClass(ctx context.Context, files *sink.WriteCache, pkg string, t *OrdinalTable, src ir.Source) (string, sink.WriteStatus, error) {
	path := EnumClassPath(t.Name)
	status, err := files.Update(ctx, path, RenderEnumClass(pkg, t))
	if err != nil {
		return path, status, diag.Wrap(diag.CodeWriteFailed, src, err, fmt.Sprintf("write %s", path))
	}
	return path, status, nil
}

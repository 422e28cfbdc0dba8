package java

import (
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"regexp"
	"strconv"
	"testing"

	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typemap"
)

var exampleType = ir.NativeType{ImportPath: "github.com/acme/example", Name: "Color"}

// colorDef returns the Color enum used throughout the tests: Red, Green, Blue.
func colorDef() *ir.EnumDefinition {
	return &ir.EnumDefinition{
		Name:   "Color",
		Native: exampleType,
		Items: []ir.EnumItem{
			{Name: "Red"},
			{Name: "Green"},
			{Name: "Blue"},
		},
		Source: ir.Source{File: "color.go", Line: 5, Column: 6},
	}
}

// documentedColorDef returns Color with documentation on the type and some items.
func documentedColorDef() *ir.EnumDefinition {
	deprecated := "use Azure"
	def := colorDef()
	def.Documentation = ir.Documentation{
		Summary: "Color is a primary color.",
		Body:    "Color is a primary color.",
	}
	def.Items[0].Documentation = ir.Documentation{Summary: "Red light.", Body: "Red light."}
	def.Items[2].Documentation = ir.Documentation{
		Summary:    "Blue light.",
		Body:       "Blue light.\nShort wavelength.",
		Deprecated: &deprecated,
	}
	return def
}

func newTestContext(t *testing.T) (*Context, *sink.MemorySink) {
	t.Helper()
	mem := sink.NewMemorySink()
	c := NewContext("com.example", "jni", sink.NewWriteCache(mem), typemap.RejectDuplicates)
	return c, mem
}

var javaCaseRE = regexp.MustCompile(`case (-?\d+): return (\w+);`)

// javaDecodeTable extracts the ordinal -> constant mapping of a rendered fromInt.
func javaDecodeTable(t *testing.T, src []byte) map[int32]string {
	t.Helper()
	out := make(map[int32]string)
	for _, m := range javaCaseRE.FindAllSubmatch(src, -1) {
		n, err := strconv.ParseInt(string(m[1]), 10, 32)
		if err != nil {
			t.Fatalf("bad ordinal %q: %v", m[1], err)
		}
		out[int32(n)] = string(m[2])
	}
	return out
}

var javaConstRE = regexp.MustCompile(`(?m)^    (\w+)\((-?\d+)\)([,;])$`)

type javaConst struct {
	name      string
	ordinal   string
	separator string
}

// javaConstants extracts the constant declarations of a rendered enum, in order.
func javaConstants(src []byte) []javaConst {
	var out []javaConst
	for _, m := range javaConstRE.FindAllSubmatch(src, -1) {
		out = append(out, javaConst{string(m[1]), string(m[2]), string(m[3])})
	}
	return out
}

// failingSink rejects every write.
type failingSink struct{ err error }

func (s failingSink) WriteFile(ctx context.Context, path string, content []byte) error {
	return s.err
}

var errDiskFull = errors.New("disk full")

// parseModule renders m and parses the result as Go source.
func parseModule(t *testing.T, m *NativeModule) (*ast.File, []byte) {
	t.Helper()
	src, err := m.Render("jni_glue.go")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), "jni_glue.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	return f, src
}

// findFunc returns the declaration of the function or method named name
// (for methods, recv is the receiver type name).
func findFunc(t *testing.T, f *ast.File, recv, name string) *ast.FuncDecl {
	t.Helper()
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Name.Name != name {
			continue
		}
		if recv == "" && fn.Recv == nil {
			return fn
		}
		if recv != "" && fn.Recv != nil && types.ExprString(fn.Recv.List[0].Type) == recv {
			return fn
		}
	}
	t.Fatalf("function %s.%s not found", recv, name)
	return nil
}

type switchCase struct {
	expr   string // case expression, "" for default
	result ast.Stmt
}

// switchCases returns the clauses of the first switch statement in fn.
func switchCases(t *testing.T, fn *ast.FuncDecl) []switchCase {
	t.Helper()
	var sw *ast.SwitchStmt
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		if s, ok := n.(*ast.SwitchStmt); ok && sw == nil {
			sw = s
			return false
		}
		return true
	})
	if sw == nil {
		t.Fatalf("no switch in %s", fn.Name.Name)
	}
	var out []switchCase
	for _, stmt := range sw.Body.List {
		clause := stmt.(*ast.CaseClause)
		var c switchCase
		if len(clause.List) == 1 {
			c.expr = types.ExprString(clause.List[0])
		}
		if len(clause.Body) > 0 {
			c.result = clause.Body[0]
		}
		out = append(out, c)
	}
	return out
}

// returned is the expression of a return statement.
func returned(t *testing.T, stmt ast.Stmt) string {
	t.Helper()
	ret, ok := stmt.(*ast.ReturnStmt)
	if !ok || len(ret.Results) != 1 {
		t.Fatalf("expected single-value return, got %T", stmt)
	}
	return types.ExprString(ret.Results[0])
}

// assignedString is the unquoted string literal assigned by stmt.
func assignedString(t *testing.T, stmt ast.Stmt) string {
	t.Helper()
	assign, ok := stmt.(*ast.AssignStmt)
	if !ok || len(assign.Rhs) != 1 {
		t.Fatalf("expected assignment, got %T", stmt)
	}
	lit, ok := assign.Rhs[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		t.Fatalf("expected string literal, got %s", types.ExprString(assign.Rhs[0]))
	}
	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

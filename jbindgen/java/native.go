package java

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"
)

// OrdinalConvertible is the capability tag of native types whose glue
// implements jnirt.OrdinalConvertible.
const OrdinalConvertible = "jnirt.OrdinalConvertible"

var ordinalGlueTemplate = template.Must(template.New("ordinals").Parse(`// {{.Impl}} converts {{.Type}} to and from Java ordinals.
type {{.Impl}} struct{}

var _ jnirt.OrdinalConvertible[{{.Type}}] = {{.Impl}}{}

func ({{.Impl}}) ToOrdinal(v {{.Type}}) jnirt.Int {
	switch v {
{{- range .Rows}}
	case {{.Const}}:
		return {{.Ordinal}}
{{- end}}
	default:
		panic(jnirt.NewValueFault({{printf "%q" .Enum}}, v))
	}
}

func ({{.Impl}}) FromOrdinal(x jnirt.Int) {{.Type}} {
	switch x {
{{- range .Rows}}
	case {{.Ordinal}}:
		return {{.Const}}
{{- end}}
	default:
		panic(jnirt.NewOrdinalFault({{printf "%q" .Enum}}, x))
	}
}
`))

type glueRow struct {
	Const   string
	Foreign string
	Ordinal int32
}

type glueData struct {
	Impl    string
	Handles string
	Func    string
	Type    string
	Enum    string
	Class   string
	Rows    []glueRow
}

func newGlueData(t *OrdinalTable, alias string) glueData {
	qualify := func(ident string) string {
		if alias == "" {
			return ident
		}
		return alias + "." + ident
	}
	name := goIdent(t.Name)
	d := glueData{
		Impl:    "ordinals" + name,
		Handles: "handles" + name,
		Func:    "objectFrom" + name,
		Type:    qualify(t.Native.Name),
		Enum:    t.Native.QualifiedName(),
		Rows:    make([]glueRow, len(t.Rows)),
	}
	for i, row := range t.Rows {
		d.Rows[i] = glueRow{
			Const:   qualify(row.Native),
			Foreign: row.Foreign,
			Ordinal: row.Ordinal,
		}
	}
	return d
}

// OrdinalImpl returns the Go expression of the jnirt.OrdinalConvertible
// implementation generated for t.
func OrdinalImpl(t *OrdinalTable) string {
	return "ordinals" + goIdent(t.Name) + "{}"
}

// RenderOrdinalGlue renders the jnirt.OrdinalConvertible implementation for
// t. alias is the name the native module uses for the package of t's type.
func RenderOrdinalGlue(t *OrdinalTable, alias string) (Fragment, error) {
	data := newGlueData(t, alias)
	var buf bytes.Buffer
	if err := ordinalGlueTemplate.Execute(&buf, data); err != nil {
		return Fragment{}, fmt.Errorf("render ordinal glue for %s: %w", t.Name, err)
	}
	return Fragment{
		Name:    "ordinals " + t.Name,
		Imports: fragmentImports(t),
		Code:    buf.String(),
	}, nil
}

func fragmentImports(t *OrdinalTable) []string {
	if t.Native.ImportPath == "" {
		return []string{RuntimeImportPath}
	}
	return []string{RuntimeImportPath, t.Native.ImportPath}
}

// goIdent turns a Java identifier into one usable inside Go identifiers.
func goIdent(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, name)
}

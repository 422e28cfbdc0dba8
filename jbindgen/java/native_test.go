package java

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/jbind/jbindgen/ir"
)

func renderGlueModule(t *testing.T, def *ir.EnumDefinition) (*NativeModule, *OrdinalTable) {
	t.Helper()
	table, err := BuildOrdinalTable(def)
	require.NoError(t, err)

	m := NewNativeModule("jni")
	glue, err := RenderOrdinalGlue(table, m.Import(table.Native))
	require.NoError(t, err)
	m.Append(glue)
	return m, table
}

func TestRenderOrdinalGlue_Encode(t *testing.T) {
	m, _ := renderGlueModule(t, colorDef())
	f, _ := parseModule(t, m)

	cases := switchCases(t, findFunc(t, f, "ordinalsColor", "ToOrdinal"))
	require.Len(t, cases, 4)

	encode := make(map[string]string)
	for _, c := range cases[:3] {
		encode[c.expr] = returned(t, c.result)
	}
	assert.Equal(t, map[string]string{
		"example.Red":   "0",
		"example.Green": "1",
		"example.Blue":  "2",
	}, encode)
	assert.Empty(t, cases[3].expr, "last clause is the fallback")
}

func TestRenderOrdinalGlue_Decode(t *testing.T) {
	m, _ := renderGlueModule(t, colorDef())
	f, src := parseModule(t, m)

	cases := switchCases(t, findFunc(t, f, "ordinalsColor", "FromOrdinal"))
	require.Len(t, cases, 4)

	decode := make(map[string]string)
	for _, c := range cases[:3] {
		decode[c.expr] = returned(t, c.result)
	}
	assert.Equal(t, "example.Green", decode["1"])
	_, ok := decode["3"]
	assert.False(t, ok)
	assert.Empty(t, cases[3].expr)
	assert.Contains(t, string(src), `panic(jnirt.NewOrdinalFault("example.Color", x))`)
	assert.Contains(t, string(src), `panic(jnirt.NewValueFault("example.Color", v))`)
}

func TestRenderOrdinalGlue_MatchesJavaOrdinals(t *testing.T) {
	def := colorDef()
	def.Items[1].NativeName = "ColorGreen"
	m, table := renderGlueModule(t, def)
	f, _ := parseModule(t, m)

	java := javaConstants(RenderEnumClass("com.example", table))
	cases := switchCases(t, findFunc(t, f, "ordinalsColor", "ToOrdinal"))
	require.Len(t, cases, len(java)+1)

	for i, c := range java {
		assert.Equal(t, "example."+table.Rows[i].Native, cases[i].expr)
		assert.Equal(t, c.ordinal, returned(t, cases[i].result), "ordinal of %s", c.name)
	}
	assert.Equal(t, "example.ColorGreen", cases[1].expr)
}

func TestRenderOrdinalGlue_Assertion(t *testing.T) {
	m, _ := renderGlueModule(t, colorDef())
	_, src := parseModule(t, m)

	assert.Contains(t, string(src), "var _ jnirt.OrdinalConvertible[example.Color] = ordinalsColor{}")
	assert.Contains(t, string(src), `"github.com/acme/example"`)
	assert.Contains(t, string(src), `"github.com/broady/jbind/jnirt"`)
}

func TestRenderOrdinalGlue_LocalType(t *testing.T) {
	def := &ir.EnumDefinition{
		Name:  "Mode",
		Items: []ir.EnumItem{{Name: "ON", NativeName: "ModeOn"}, {Name: "OFF", NativeName: "ModeOff"}},
	}
	m, table := renderGlueModule(t, def)
	f, src := parseModule(t, m)

	cases := switchCases(t, findFunc(t, f, "ordinalsMode", "FromOrdinal"))
	assert.Equal(t, "ModeOn", returned(t, cases[0].result))
	assert.Equal(t, "ModeOff", returned(t, cases[1].result))
	assert.Contains(t, string(src), "func (ordinalsMode) FromOrdinal(x jnirt.Int) Mode {")
	assert.Equal(t, []string{RuntimeImportPath}, fragmentImports(table))
}

func TestRenderOrdinalGlue_Empty(t *testing.T) {
	m, _ := renderGlueModule(t, &ir.EnumDefinition{Name: "Nothing"})
	f, _ := parseModule(t, m)

	for _, fn := range []string{"ToOrdinal", "FromOrdinal"} {
		cases := switchCases(t, findFunc(t, f, "ordinalsNothing", fn))
		require.Len(t, cases, 1, fn)
		assert.Empty(t, cases[0].expr, "%s only has the fallback", fn)
	}
}

func TestRenderOrdinalGlue_Large(t *testing.T) {
	def := &ir.EnumDefinition{Name: "Big", Native: exampleType}
	for i := 0; i < 300; i++ {
		def.Items = append(def.Items, ir.EnumItem{Name: "V" + strconv.Itoa(i)})
	}
	m, _ := renderGlueModule(t, def)
	f, _ := parseModule(t, m)

	cases := switchCases(t, findFunc(t, f, "ordinalsBig", "FromOrdinal"))
	require.Len(t, cases, 301)
	assert.Equal(t, "299", cases[299].expr)
	assert.Equal(t, "example.V299", returned(t, cases[299].result))
}

func TestOrdinalImpl(t *testing.T) {
	table, err := BuildOrdinalTable(colorDef())
	require.NoError(t, err)
	assert.Equal(t, "ordinalsColor{}", OrdinalImpl(table))
}

func TestGoIdent(t *testing.T) {
	assert.Equal(t, "Color", goIdent("Color"))
	assert.Equal(t, "Outer_Inner", goIdent("Outer$Inner"))
	assert.False(t, strings.ContainsAny(goIdent("a.b-c"), ".-"))
}

package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/jbind/jbindgen/ir"
)

func renderCallbackModule(t *testing.T, def *ir.EnumDefinition) (*NativeModule, *OrdinalTable) {
	t.Helper()
	table, err := BuildOrdinalTable(def)
	require.NoError(t, err)

	m := NewNativeModule("jni")
	fragment, err := RenderCallbackConversion(table, m.Import(table.Native), "com/example/"+def.Name)
	require.NoError(t, err)
	m.Append(fragment)
	return m, table
}

func TestRenderCallbackConversion(t *testing.T) {
	m, _ := renderCallbackModule(t, colorDef())
	f, src := parseModule(t, m)

	assert.Contains(t, string(src), `var handlesColor = jnirt.NewEnumHandles("com/example/Color")`)
	assert.Contains(t, string(src), "func objectFromColor(env jnirt.Env, v example.Color) jnirt.Object {")
	assert.Contains(t, string(src), "return handlesColor.Object(env, item)")

	cases := switchCases(t, findFunc(t, f, "", "objectFromColor"))
	require.Len(t, cases, 4)
	items := make(map[string]string)
	for _, c := range cases[:3] {
		items[c.expr] = assignedString(t, c.result)
	}
	assert.Equal(t, map[string]string{
		"example.Red":   "Red",
		"example.Green": "Green",
		"example.Blue":  "Blue",
	}, items)
	assert.Empty(t, cases[3].expr)
}

func TestRenderCallbackConversion_LookupNamesMatchJava(t *testing.T) {
	def := &ir.EnumDefinition{
		Name:   "Status",
		Native: exampleType,
		Items: []ir.EnumItem{
			{Name: "OK", NativeName: "StatusOK"},
			{Name: "NOT_FOUND", NativeName: "StatusNotFound"},
			{Name: "Ünïcode", NativeName: "StatusUnicode"},
		},
	}
	m, table := renderCallbackModule(t, def)
	f, _ := parseModule(t, m)

	java := javaConstants(RenderEnumClass("com.example", table))
	cases := switchCases(t, findFunc(t, f, "", "objectFromStatus"))
	require.Len(t, cases, len(def.Items)+1)

	for i, item := range def.Items {
		assert.Equal(t, "example."+item.NativeName, cases[i].expr)
		assert.Equal(t, item.Name, assignedString(t, cases[i].result))
	}
	// The \w based extractor cannot see non-ASCII names, so compare the ASCII ones.
	require.Len(t, java, 2)
	for i, c := range java {
		assert.Equal(t, c.name, assignedString(t, cases[i].result))
	}
}

func TestRenderCallbackConversion_Empty(t *testing.T) {
	m, _ := renderCallbackModule(t, &ir.EnumDefinition{Name: "Nothing", Native: exampleType})
	f, _ := parseModule(t, m)

	cases := switchCases(t, findFunc(t, f, "", "objectFromNothing"))
	require.Len(t, cases, 1)
	assert.Empty(t, cases[0].expr)
}

func TestCallbackFunc(t *testing.T) {
	table, err := BuildOrdinalTable(colorDef())
	require.NoError(t, err)
	assert.Equal(t, "objectFromColor", CallbackFunc(table))
}

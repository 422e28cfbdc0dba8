package java

import (
	"bytes"
	"fmt"
	"text/template"
)

var callbackTemplate = template.Must(template.New("callback").Parse(`var {{.Handles}} = jnirt.NewEnumHandles({{printf "%q" .Class}})

// {{.Func}} returns the Java constant for v. It is used when v is passed to
// a Java callback, where only an object reference can be handed over.
func {{.Func}}(env jnirt.Env, v {{.Type}}) jnirt.Object {
	var item string
	switch v {
{{- range .Rows}}
	case {{.Const}}:
		item = {{printf "%q" .Foreign}}
{{- end}}
	default:
		panic(jnirt.NewValueFault({{printf "%q" .Enum}}, v))
	}
	return {{.Handles}}.Object(env, item)
}
`))

// CallbackFunc returns the name of the Go function converting a value of t
// into its Java constant.
func CallbackFunc(t *OrdinalTable) string {
	return "objectFrom" + goIdent(t.Name)
}

// RenderCallbackConversion renders the Go function that turns a value of t
// into a reference to the matching constant of the Java class className
// (internal form, e.g. "com/example/Color"). The constant is looked up by
// the same name RenderEnumClass declares it with.
func RenderCallbackConversion(t *OrdinalTable, alias, className string) (Fragment, error) {
	data := newGlueData(t, alias)
	data.Class = className

	var buf bytes.Buffer
	if err := callbackTemplate.Execute(&buf, data); err != nil {
		return Fragment{}, fmt.Errorf("render callback conversion for %s: %w", t.Name, err)
	}
	return Fragment{
		Name:    "callback " + t.Name,
		Imports: fragmentImports(t),
		Code:    buf.String(),
	}, nil
}

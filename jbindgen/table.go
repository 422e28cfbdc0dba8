package jbindgen

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/broady/jbind/jbindgen/typemap"
)

// WriteGraphTable prints the Java types of g and the native conversions
// registered for them.
func WriteGraphTable(w io.Writer, g *typemap.Graph) {
	var data [][]string
	for _, ft := range g.ForeignTypes() {
		native, via, caps := "-", "-", "-"
		if rule := ft.IntoFromNative; rule != nil {
			if nt := g.NativeType(rule.NativeType); nt != nil {
				native = nt.Name()
				if c := nt.Capabilities(); len(c) > 0 {
					caps = strings.Join(c, ",")
				}
			}
			if rule.Intermediate != nil {
				if it := g.NativeType(rule.Intermediate.Type); it != nil {
					via = it.Type.QualifiedName()
				}
			}
		}
		data = append(data, []string{ft.Name, native, via, caps, edgesFrom(g, ft), ft.Source.String()})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"JAVA", "NATIVE", "VIA", "CAPABILITIES", "EDGES", "SOURCE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func edgesFrom(g *typemap.Graph, ft *typemap.ForeignType) string {
	if ft.IntoFromNative == nil {
		return "-"
	}
	var targets []string
	for _, e := range g.Edges() {
		if e.From != ft.IntoFromNative.NativeType {
			continue
		}
		if nt := g.NativeType(e.To); nt != nil {
			targets = append(targets, nt.Type.QualifiedName())
		}
	}
	if len(targets) == 0 {
		return "-"
	}
	return strings.Join(targets, ",")
}

package typemap

import (
	"strings"

	"github.com/broady/jbind/jbindgen/ir"
)

// Placeholders substituted by ConvCode.Generate.
const (
	FromVar = "{from_var}"
	ToVar   = "{to_var}"
)

// ConvCode is a conversion code template. The template refers to the value
// being converted as FromVar and to the variable receiving the result as ToVar.
type ConvCode struct {
	template string

	// Source is where the rule was declared, for diagnostics.
	Source ir.Source
}

// NewConvCode creates a conversion template.
func NewConvCode(template string, src ir.Source) ConvCode {
	return ConvCode{template: template, Source: src}
}

// Template returns the raw template text.
func (c ConvCode) Template() string { return c.template }

// Generate substitutes the given variable names into the template.
func (c ConvCode) Generate(from, to string) string {
	return strings.NewReplacer(FromVar, from, ToVar, to).Replace(c.template)
}

package java

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typemap"
)

// Native types enum conversions are routed through.
var (
	JintType    = ir.NativeType{ImportPath: RuntimeImportPath, Package: "jnirt", Name: "Int"}
	JobjectType = ir.NativeType{ImportPath: RuntimeImportPath, Package: "jnirt", Name: "Object"}
)

// EnumResult describes what GenerateEnum produced.
type EnumResult struct {
	Name   string
	Items  int
	Path   string
	Status sink.WriteStatus
}

// GenerateEnum generates the bindings for def and registers them in c.Graph.
//
// The ordinal table and the foreign name are validated before anything is
// written, and the graph and native module are left untouched if the Java
// class cannot be written. Registrations are not undone once they started.
//
// When def replaces an enum of the same Java name bound to another Go type,
// that type loses the ordinal capability and callback edge it got from the
// replaced enum, since the glue they refer to is replaced too.
func GenerateEnum(ctx context.Context, c *Context, def *ir.EnumDefinition) (*EnumResult, error) {
	log := c.logger().With(slog.String("enum", def.Name))

	table, err := BuildOrdinalTable(def)
	if err != nil {
		return nil, err
	}
	log.Debug("ordinal table built", slog.Int("items", table.Len()))

	alias := c.Native.Alias(table.Native)
	className := InternalClassName(FullClassName(c.Package, def.Name))

	glue, err := RenderOrdinalGlue(table, alias)
	if err != nil {
		return nil, err
	}
	callback, err := RenderCallbackConversion(table, alias, className)
	if err != nil {
		return nil, err
	}

	if err := c.Graph.CheckForeignName(def.Name, def.Source); err != nil {
		return nil, err
	}

	path, status, err := WriteEnumClass(ctx, c.Files, c.Package, table, def.Source)
	if err != nil {
		return nil, err
	}
	log.Debug("java class updated", slog.String("path", path), slog.String("status", status.String()))

	c.Native.Import(table.Native)
	if prev, ok := c.Graph.ForeignType(def.Name); ok {
		retractReplaced(c, table, prev)
	}

	enumTy := c.Graph.FindOrAllocNativeTypeThatImplements(table.Native,
		map[string]string{OrdinalConvertible: OrdinalImpl(table)}, def.Source)
	c.Native.Append(glue)

	jint := c.Graph.FindOrAllocNativeType(JintType, ir.Source{})

	ftype := &typemap.ForeignType{
		Name:   def.Name,
		Source: def.Source,
		IntoFromNative: &typemap.ConversionRule{
			NativeType: enumTy.Idx,
			Intermediate: &typemap.Intermediate{
				Type: jint.Idx,
				Code: typemap.NewConvCode(
					fmt.Sprintf("        %[1]s %[2]s = %[1]s.fromInt(%[3]s);", def.Name, typemap.ToVar, typemap.FromVar),
					def.Source,
				),
			},
		},
		FromIntoNative: &typemap.ConversionRule{
			NativeType: enumTy.Idx,
			Intermediate: &typemap.Intermediate{
				Type: jint.Idx,
				Code: typemap.NewConvCode(
					fmt.Sprintf("        int %s = %s.getValue();", typemap.ToVar, typemap.FromVar),
					def.Source,
				),
			},
		},
	}
	if err := c.Graph.AllocForeignType(ftype); err != nil {
		return nil, err
	}
	c.Graph.RegisterExportedEnum(def)

	addCallbackConversion(c, table, enumTy, callback, def.Source)

	log.Info("enum generated",
		slog.Int("items", table.Len()),
		slog.String("path", path),
		slog.String("status", status.String()),
	)
	return &EnumResult{
		Name:   def.Name,
		Items:  table.Len(),
		Path:   path,
		Status: status,
	}, nil
}

// retractReplaced removes what the enum replaced by t registered on its Go
// type, if that type is not t's.
func retractReplaced(c *Context, t *OrdinalTable, prev *typemap.ForeignType) {
	if prev.IntoFromNative == nil {
		return
	}
	old := c.Graph.NativeType(prev.IntoFromNative.NativeType)
	if old == nil || old.Type.Identity() == t.Native.Identity() {
		return
	}
	if impl, ok := old.Capability(OrdinalConvertible); ok && impl == OrdinalImpl(t) {
		c.Graph.RemoveCapability(old.Idx, OrdinalConvertible)
	}
	jobject, ok := c.Graph.LookupNativeType(JobjectType.Identity())
	if !ok {
		return
	}
	if e, ok := c.Graph.ConversionRule(old.Idx, jobject.Idx); ok && e.Code.Template() == callbackEdge(t) {
		c.Graph.RemoveConversionRule(old.Idx, jobject.Idx)
	}
}

func callbackEdge(t *OrdinalTable) string {
	return fmt.Sprintf("%s := %s(env, %s)", typemap.ToVar, CallbackFunc(t), typemap.FromVar)
}

// addCallbackConversion appends the callback conversion and registers the
// edge from the enum type to jnirt.Object that routes callback arguments
// through it.
func addCallbackConversion(c *Context, t *OrdinalTable, enumTy *typemap.NativeType, callback Fragment, src ir.Source) {
	c.Native.Append(callback)

	jobject := c.Graph.FindOrAllocNativeType(JobjectType, ir.Source{})
	c.Graph.AddConversionRule(enumTy.Idx, jobject.Idx, typemap.Edge{
		Code: typemap.NewConvCode(callbackEdge(t), src),
	})
}

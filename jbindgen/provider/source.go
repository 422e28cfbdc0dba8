package provider

import (
	"context"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/packages"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/internal/directive"
	"github.com/broady/jbind/jbindgen/internal/validation"
	"github.com/broady/jbind/jbindgen/ir"
)

// SourceProvider finds enums in Go packages. An enum is an exported defined
// type whose underlying type is an integer or string, together with the
// exported constants of that type. Items are ordered by declaration.
type SourceProvider struct {
	// Packages are the Go package patterns to load.
	Packages []string

	// RootTypes restricts extraction to the named types. If empty, every
	// enum in the packages is extracted.
	RootTypes []string

	// TrimTypePrefix drops the type name from item names when every
	// constant starts with it, so ColorRed becomes Red.
	TrimTypePrefix bool

	// OnlyMarked restricts extraction to types marked //jbind:enum.
	OnlyMarked bool

	// Dir is the directory packages are resolved from.
	Dir string
}

// Enums loads the packages and extracts their enums.
func (p *SourceProvider) Enums(ctx context.Context) ([]*ir.EnumDefinition, error) {
	if len(p.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     p.Dir,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, p.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}

	var defs []*ir.EnumDefinition
	found := make(map[string]bool)
	for _, pkg := range pkgs {
		x := &extractor{pkg: pkg, trimPrefix: p.TrimTypePrefix, onlyMarked: p.OnlyMarked}
		enums, err := x.enums()
		if err != nil {
			return nil, err
		}
		for _, def := range enums {
			if !p.wants(def.Native.Name) {
				continue
			}
			found[def.Native.Name] = true
			defs = append(defs, def)
		}
	}
	for _, name := range p.RootTypes {
		if !found[name] {
			return nil, fmt.Errorf("enum type %s not found in any package", name)
		}
	}
	return defs, nil
}

func (p *SourceProvider) wants(name string) bool {
	if len(p.RootTypes) == 0 {
		return true
	}
	for _, n := range p.RootTypes {
		if n == name {
			return true
		}
	}
	return false
}

// extractor pulls enums out of one loaded package.
type extractor struct {
	pkg        *packages.Package
	trimPrefix bool
	onlyMarked bool
}

type enumConst struct {
	obj      *types.Const
	doc      ir.Documentation
	javaName string // from //jbind:name
}

func (x *extractor) enums() ([]*ir.EnumDefinition, error) {
	scope := x.pkg.Types.Scope()

	var defs []*ir.EnumDefinition
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || !enumUnderlying(named) {
			continue
		}

		doc := x.typeDoc(tn)
		dirs, err := directive.Parse(x.pkg.Fset, doc)
		if err != nil {
			return nil, err
		}
		if dirs.Has(directive.KindSkip) || (x.onlyMarked && !dirs.Has(directive.KindEnum)) {
			continue
		}

		consts, err := x.constantsOf(named)
		if err != nil {
			return nil, err
		}
		if len(consts) == 0 {
			continue
		}
		def := x.definition(tn, doc, consts)
		if javaName, _ := dirs.Arg(directive.KindEnum); javaName != "" {
			if !validation.IsJavaIdent(javaName) {
				return nil, diag.Errorf(diag.CodeInvalidDefinition, def.Source,
					"//jbind:enum %s: not a valid Java identifier", javaName)
			}
			def.Name = javaName
		}
		defs = append(defs, def)
	}

	// Scope names are sorted alphabetically; generate in declaration order.
	sort.SliceStable(defs, func(i, j int) bool {
		a, b := defs[i].Source, defs[j].Source
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Line < b.Line
	})
	return defs, nil
}

func enumUnderlying(named *types.Named) bool {
	basic, ok := named.Underlying().(*types.Basic)
	return ok && basic.Info()&(types.IsInteger|types.IsString) != 0
}

// constantsOf returns the exported constants of type named in declaration
// order, files taken in the order the package lists them. A constant
// repeating the value of an earlier one is an alias and is skipped, as is
// any constant marked //jbind:skip.
func (x *extractor) constantsOf(named *types.Named) ([]enumConst, error) {
	var out []enumConst
	for _, file := range x.pkg.Syntax {
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.CONST {
				continue
			}
			for _, spec := range gen.Specs {
				vs := spec.(*ast.ValueSpec)
				for _, ident := range vs.Names {
					c, ok := x.pkg.TypesInfo.Defs[ident].(*types.Const)
					if !ok || !c.Exported() || !types.Identical(c.Type(), named) {
						continue
					}
					dirs, err := directive.Parse(x.pkg.Fset, specDocGroup(gen, vs))
					if err != nil {
						return nil, err
					}
					if dirs.Has(directive.KindSkip) {
						continue
					}
					javaName, _ := dirs.Arg(directive.KindName)
					if javaName != "" && !validation.IsJavaIdent(javaName) {
						return nil, diag.Errorf(diag.CodeInvalidDefinition, x.source(c.Pos()),
							"//jbind:name %s: not a valid Java identifier", javaName)
					}
					out = append(out, enumConst{obj: c, doc: specDoc(gen, vs), javaName: javaName})
				}
			}
		}
	}

	seen := make([]constant.Value, 0, len(out))
	unique := out[:0]
outer:
	for _, c := range out {
		for _, v := range seen {
			if constant.Compare(v, token.EQL, c.obj.Val()) {
				continue outer
			}
		}
		seen = append(seen, c.obj.Val())
		unique = append(unique, c)
	}
	return unique, nil
}

// specDocGroup returns the doc comment of a constant, falling back to the
// comment of a single-spec declaration.
func specDocGroup(gen *ast.GenDecl, vs *ast.ValueSpec) *ast.CommentGroup {
	if vs.Doc != nil {
		return vs.Doc
	}
	if len(gen.Specs) == 1 {
		return gen.Doc
	}
	return nil
}

// specDoc returns the documentation of a constant: its doc comment, or
// its trailing line comment.
func specDoc(gen *ast.GenDecl, vs *ast.ValueSpec) ir.Documentation {
	if cg := specDocGroup(gen, vs); cg != nil {
		return parseDoc(cg.Text())
	}
	if vs.Comment != nil {
		return parseDoc(vs.Comment.Text())
	}
	return ir.Documentation{}
}

func (x *extractor) definition(tn *types.TypeName, doc *ast.CommentGroup, consts []enumConst) *ir.EnumDefinition {
	names := make([]string, len(consts))
	for i, c := range consts {
		names[i] = c.obj.Name()
	}
	if x.trimPrefix {
		names = trimCommonPrefix(tn.Name(), names)
	}

	def := &ir.EnumDefinition{
		Name: tn.Name(),
		Native: ir.NativeType{
			ImportPath: x.pkg.PkgPath,
			Package:    x.pkg.Name,
			Name:       tn.Name(),
		},
		Source: x.source(tn.Pos()),
		Items:  make([]ir.EnumItem, len(consts)),
	}
	if doc != nil {
		def.Documentation = parseDoc(doc.Text())
	}
	for i, c := range consts {
		name := names[i]
		if c.javaName != "" {
			name = c.javaName
		}
		def.Items[i] = ir.EnumItem{
			Name:          name,
			NativeName:    c.obj.Name(),
			Documentation: c.doc,
		}
	}
	return def
}

// trimCommonPrefix removes prefix from every name if all of them start with
// it and what remains is still a usable identifier.
func trimCommonPrefix(prefix string, names []string) []string {
	trimmed := make([]string, len(names))
	for i, n := range names {
		rest, ok := strings.CutPrefix(n, prefix)
		if !ok || rest == "" {
			return names
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsLetter(r) && r != '_' {
			return names
		}
		trimmed[i] = rest
	}
	return trimmed
}

// typeDoc returns the doc comment of the declaration of tn.
func (x *extractor) typeDoc(tn *types.TypeName) *ast.CommentGroup {
	for _, file := range x.pkg.Syntax {
		if file.Pos() > tn.Pos() || file.End() < tn.Pos() {
			continue
		}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Name.Pos() != tn.Pos() {
					continue
				}
				if ts.Doc == nil && len(gen.Specs) == 1 {
					return gen.Doc
				}
				return ts.Doc
			}
		}
	}
	return nil
}

func (x *extractor) source(pos token.Pos) ir.Source {
	if !pos.IsValid() {
		return ir.Source{}
	}
	p := x.pkg.Fset.Position(pos)
	return ir.Source{File: p.Filename, Line: p.Line, Column: p.Column}
}

package java

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/broady/jbind/jbindgen/ir"
)

// RuntimeImportPath is the import path of the package generated glue depends on.
const RuntimeImportPath = "github.com/broady/jbind/jnirt"

// Fragment is a piece of generated Go source.
type Fragment struct {
	// Name identifies the fragment in logs, e.g. "ordinals Color".
	Name string

	// Imports are the import paths the code refers to.
	Imports []string

	// Code is Go source for top-level declarations.
	Code string
}

// NativeModule accumulates the Go glue of a build. Fragments are appended in
// generation order and rendered once, as a single Go file, at the end of the
// build.
type NativeModule struct {
	pkg string

	aliases map[string]string // import path -> name used in code
	paths   map[string]string // name used in code -> import path

	fragments []Fragment
}

// Identifiers the glue templates use inside function bodies. An import
// alias equal to one of them would be shadowed.
var glueLocals = []string{"item", "v", "x", "env", "string", "panic"}

// Prefixes of the top-level names the glue declares. Packages named like
// them are imported under an underscore-prefixed alias.
var gluePrefixes = []string{"ordinals", "handles", "objectFrom"}

// NewNativeModule returns an empty module for Go package pkg.
func NewNativeModule(pkg string) *NativeModule {
	m := &NativeModule{
		pkg:     pkg,
		aliases: make(map[string]string),
		paths:   make(map[string]string),
	}
	m.reserve(RuntimeImportPath, "jnirt")
	for _, name := range glueLocals {
		m.paths[name] = ""
	}
	m.paths[pkg] = ""
	return m
}

// Package returns the Go package name of the module.
func (m *NativeModule) Package() string { return m.pkg }

// Alias returns the name Import would return for t, without reserving it.
func (m *NativeModule) Alias(t ir.NativeType) string {
	if t.ImportPath == "" {
		return ""
	}
	if alias, ok := m.aliases[t.ImportPath]; ok {
		return alias
	}
	base := t.PackageName()
	for _, prefix := range gluePrefixes {
		if strings.HasPrefix(base, prefix) {
			base = "_" + base
			break
		}
	}
	alias := base
	for n := 2; m.taken(alias); n++ {
		alias = base + strconv.Itoa(n)
	}
	return alias
}

// Import returns the name code in this module uses to refer to the package
// of t, reserving it for t's import path. It returns the empty string for
// types declared in the module itself.
func (m *NativeModule) Import(t ir.NativeType) string {
	alias := m.Alias(t)
	if alias != "" {
		m.reserve(t.ImportPath, alias)
	}
	return alias
}

func (m *NativeModule) taken(alias string) bool {
	_, ok := m.paths[alias]
	return ok
}

func (m *NativeModule) reserve(importPath, alias string) {
	m.aliases[importPath] = alias
	m.paths[alias] = importPath
}

// Append adds a fragment to the end of the module. A fragment named like an
// earlier one replaces it in place.
func (m *NativeModule) Append(f Fragment) {
	for i := range m.fragments {
		if m.fragments[i].Name == f.Name {
			m.fragments[i] = f
			return
		}
	}
	m.fragments = append(m.fragments, f)
}

// Fragments returns the fragments appended so far.
func (m *NativeModule) Fragments() []Fragment {
	out := make([]Fragment, len(m.fragments))
	copy(out, m.fragments)
	return out
}

// Render returns the formatted Go file holding every fragment.
// filename is only used in error messages.
func (m *NativeModule) Render(filename string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by jbind. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n", m.pkg)

	used := make(map[string]bool)
	for _, f := range m.fragments {
		for _, p := range f.Imports {
			used[p] = true
		}
	}
	importPaths := make([]string, 0, len(used))
	for p := range used {
		importPaths = append(importPaths, p)
	}
	sort.Strings(importPaths)

	if len(importPaths) > 0 {
		buf.WriteString("\nimport (\n")
		for _, p := range importPaths {
			alias, ok := m.aliases[p]
			if !ok || alias == path.Base(p) {
				fmt.Fprintf(&buf, "\t%q\n", p)
			} else {
				fmt.Fprintf(&buf, "\t%s %q\n", alias, p)
			}
		}
		buf.WriteString(")\n")
	}

	for _, f := range m.fragments {
		buf.WriteString("\n")
		buf.WriteString(f.Code)
	}

	out, err := imports.Process(filename, buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", filename, err)
	}
	return out, nil
}

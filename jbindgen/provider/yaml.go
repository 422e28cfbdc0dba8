package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/internal/validation"
	"github.com/broady/jbind/jbindgen/ir"
)

// FileProvider reads enum definitions from YAML files:
//
//	enums:
//	  - name: Color
//	    native: {import: github.com/acme/example, name: Color}
//	    doc: Color is a primary color.
//	    items:
//	      - name: Red
//	        native: ColorRed
//	      - name: Green
type FileProvider struct {
	// Files are read in order.
	Files []string
}

type definitionFile struct {
	Enums []enumEntry `yaml:"enums"`
}

type enumEntry struct {
	Name       string      `yaml:"name" validate:"required,java_ident"`
	Native     nativeEntry `yaml:"native"`
	Doc        string      `yaml:"doc"`
	Deprecated *string     `yaml:"deprecated"`
	Items      []itemEntry `yaml:"items" validate:"dive"`
}

type nativeEntry struct {
	Import  string `yaml:"import"`
	Package string `yaml:"package" validate:"omitempty,go_ident"`
	Name    string `yaml:"name" validate:"omitempty,go_ident"`
}

type itemEntry struct {
	Name       string  `yaml:"name" validate:"required,java_ident"`
	Native     string  `yaml:"native" validate:"omitempty,go_ident"`
	Doc        string  `yaml:"doc"`
	Deprecated *string `yaml:"deprecated"`
}

// Enums reads every file and returns its definitions in file order.
func (p *FileProvider) Enums(ctx context.Context) ([]*ir.EnumDefinition, error) {
	var defs []*ir.EnumDefinition
	for _, name := range p.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, diag.Wrap(diag.CodeInvalidDefinition, ir.Source{File: name}, err, "read definitions")
		}
		got, err := ParseDefinitions(name, data)
		if err != nil {
			return nil, err
		}
		defs = append(defs, got...)
	}
	return defs, nil
}

// ParseDefinitions parses the YAML definition file named filename.
// Every problem found is reported, each at its own location.
func ParseDefinitions(filename string, data []byte) ([]*ir.EnumDefinition, error) {
	fileSrc := ir.Source{File: filename}

	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, diag.Wrap(diag.CodeInvalidDefinition, fileSrc, err, "parse definitions")
	}

	enums, err := enumNodes(&doc)
	if err != nil {
		return nil, diag.Wrap(diag.CodeInvalidDefinition, fileSrc, err, "parse definitions")
	}

	var (
		defs []*ir.EnumDefinition
		errs diag.List
	)
	for _, node := range enums {
		src := ir.Source{File: filename, Line: node.Line, Column: node.Column}

		var entry enumEntry
		if err := node.Decode(&entry); err != nil {
			errs.Add(diag.Wrap(diag.CodeInvalidDefinition, src, err, "decode enum"))
			continue
		}
		if err := validation.Struct(entry); err != nil {
			errs.Add(diag.Errorf(diag.CodeInvalidDefinition, src, "enum %s: %s",
				displayName(entry.Name), strings.Join(validation.Messages(err), "; ")))
			continue
		}
		if msgs := entry.nativeFallbackErrors(); len(msgs) > 0 {
			errs.Add(diag.Errorf(diag.CodeInvalidDefinition, src, "enum %s: %s",
				displayName(entry.Name), strings.Join(msgs, "; ")))
			continue
		}
		defs = append(defs, entry.definition(src))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return defs, nil
}

// enumNodes returns the sequence items under the top-level "enums" key.
func enumNodes(doc *yaml.Node) ([]*yaml.Node, error) {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping with an \"enums\" key", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value != "enums" {
			continue
		}
		if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
			return nil, nil
		}
		if value.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("line %d: \"enums\" must be a list", value.Line)
		}
		return value.Content, nil
	}
	return nil, nil
}

// nativeFallbackErrors reports Java names that stand in for a missing Go
// name but are not Go identifiers.
func (e *enumEntry) nativeFallbackErrors() []string {
	var msgs []string
	if e.Native.Name == "" && !validation.IsGoIdent(e.Name) {
		msgs = append(msgs, fmt.Sprintf("native.name: required, %s is not a Go identifier", e.Name))
	}
	for i, item := range e.Items {
		if item.Native == "" && !validation.IsGoIdent(item.Name) {
			msgs = append(msgs, fmt.Sprintf("items[%d].native: required, %s is not a Go identifier", i, item.Name))
		}
	}
	return msgs
}

func (e *enumEntry) definition(src ir.Source) *ir.EnumDefinition {
	def := &ir.EnumDefinition{
		Name: e.Name,
		Native: ir.NativeType{
			ImportPath: e.Native.Import,
			Package:    e.Native.Package,
			Name:       e.Native.Name,
		},
		Documentation: entryDoc(e.Doc, e.Deprecated),
		Source:        src,
		Items:         make([]ir.EnumItem, len(e.Items)),
	}
	for i, item := range e.Items {
		def.Items[i] = ir.EnumItem{
			Name:          item.Name,
			NativeName:    item.Native,
			Documentation: entryDoc(item.Doc, item.Deprecated),
		}
	}
	return def
}

func entryDoc(text string, deprecated *string) ir.Documentation {
	doc := parseDoc(text)
	if deprecated != nil {
		msg := strings.TrimSpace(*deprecated)
		doc.Deprecated = &msg
	}
	return doc
}

func displayName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}

// Package directive parses jbind directives from Go doc comments.
//
// Directives are line comments in the form:
//
//	//jbind:enum [JavaName]
//	//jbind:name JavaName
//	//jbind:skip
//
// The enum directive marks a type for binding. The optional name replaces
// the type name on the Java side.
//
// The name directive sets the Java name of a constant.
//
// The skip directive excludes a type or constant from binding.
//
// Directive lines are dropped by ast.CommentGroup.Text, so they never show
// up in generated documentation.
package directive

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const prefix = "//jbind:"

// Kind represents the type of directive.
type Kind string

const (
	KindEnum Kind = "enum"
	KindName Kind = "name"
	KindSkip Kind = "skip"
)

// Directive represents a parsed jbind directive.
type Directive struct {
	Kind Kind
	Arg  string         // argument, empty if none
	Pos  token.Position // source location
}

// Set holds the directives attached to one declaration.
type Set []Directive

// Has reports whether the set holds a directive of kind k.
func (s Set) Has(k Kind) bool {
	_, ok := s.find(k)
	return ok
}

// Arg returns the argument of the directive of kind k.
func (s Set) Arg(k Kind) (string, bool) {
	d, ok := s.find(k)
	return d.Arg, ok
}

func (s Set) find(k Kind) (Directive, bool) {
	for _, d := range s {
		if d.Kind == k {
			return d, true
		}
	}
	return Directive{}, false
}

// Parse extracts the directives of the comment groups, in order. Nil groups
// are skipped.
//
// Returns an error if:
//   - A directive is unknown
//   - A directive has the wrong number of arguments
//   - A directive appears twice
func Parse(fset *token.FileSet, groups ...*ast.CommentGroup) (Set, error) {
	var set Set
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			text, ok := strings.CutPrefix(c.Text, prefix)
			if !ok {
				continue
			}
			pos := fset.Position(c.Pos())
			parts := strings.Fields(text)
			if len(parts) == 0 {
				return nil, fmt.Errorf("%s: empty %s directive", pos, prefix)
			}

			d := Directive{Kind: Kind(parts[0]), Pos: pos}
			args := parts[1:]
			switch d.Kind {
			case KindEnum:
				if len(args) > 1 {
					return nil, fmt.Errorf("%s: %s%s takes at most one argument", pos, prefix, d.Kind)
				}
			case KindName:
				if len(args) != 1 {
					return nil, fmt.Errorf("%s: %s%s takes exactly one argument", pos, prefix, d.Kind)
				}
			case KindSkip:
				if len(args) != 0 {
					return nil, fmt.Errorf("%s: %s%s takes no arguments", pos, prefix, d.Kind)
				}
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, parts[0])
			}
			if len(args) == 1 {
				d.Arg = args[0]
			}

			if prev, dup := set.find(d.Kind); dup {
				return nil, fmt.Errorf("%s: duplicate %s%s directive (first at %s)", pos, prefix, d.Kind, prev.Pos)
			}
			set = append(set, d)
		}
	}
	return set, nil
}

// Package provider builds enum definitions from the inputs jbind accepts:
// YAML definition files and Go packages.
package provider

import (
	"context"
	"strings"

	"github.com/broady/jbind/jbindgen/ir"
)

// Provider yields enum definitions in the order they should be generated.
type Provider interface {
	Enums(ctx context.Context) ([]*ir.EnumDefinition, error)
}

// Collect runs every provider in turn and concatenates their definitions.
func Collect(ctx context.Context, providers ...Provider) ([]*ir.EnumDefinition, error) {
	var defs []*ir.EnumDefinition
	for _, p := range providers {
		got, err := p.Enums(ctx)
		if err != nil {
			return nil, err
		}
		defs = append(defs, got...)
	}
	return defs, nil
}

// parseDoc turns comment text into Documentation. A line starting with
// "Deprecated:" becomes the deprecation message.
func parseDoc(text string) ir.Documentation {
	text = strings.TrimSpace(text)
	if text == "" {
		return ir.Documentation{}
	}
	lines := strings.Split(text, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}

	var deprecated *string
	for i, line := range lines {
		if msg, ok := strings.CutPrefix(strings.TrimSpace(line), "Deprecated:"); ok {
			msg = strings.TrimSpace(msg)
			deprecated = &msg
			lines = append(lines[:i:i], lines[i+1:]...)
			break
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var summary string
	for _, line := range lines {
		if line != "" {
			summary = line
			break
		}
	}
	return ir.Documentation{
		Summary:    summary,
		Body:       strings.Join(lines, "\n"),
		Deprecated: deprecated,
	}
}

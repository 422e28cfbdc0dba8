package jbindgen

import (
	"context"
	"log/slog"

	"github.com/broady/jbind/jbindgen/sink"
)

// Generator provides a fluent API for a build.
//
// Example:
//
//	jbindgen.ForPackage("com.example").
//	    Definitions("enums.yaml").
//	    NativePackage("glue").
//	    ToDir(ctx, "./java/src/com/example")
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

// ForPackage creates a Generator for Java package pkg.
func ForPackage(pkg string) *Generator {
	return &Generator{cfg: Config{Package: pkg}}
}

// Definitions adds YAML definition files.
func (g *Generator) Definitions(files ...string) *Generator {
	g.cfg.Definitions = append(g.cfg.Definitions, files...)
	return g
}

// Packages adds Go packages whose enums are bound.
func (g *Generator) Packages(pkgs ...string) *Generator {
	g.cfg.Packages = append(g.cfg.Packages, pkgs...)
	return g
}

// TrimTypePrefix drops the Go type name from Java constant names.
func (g *Generator) TrimTypePrefix() *Generator {
	g.cfg.TrimTypePrefix = true
	return g
}

// OnlyMarked binds only Go types marked //jbind:enum.
func (g *Generator) OnlyMarked() *Generator {
	g.cfg.OnlyMarked = true
	return g
}

// NativePackage sets the Go package name of the glue file.
func (g *Generator) NativePackage(name string) *Generator {
	g.cfg.NativePackage = name
	return g
}

// NativeFile sets where the glue is written. An empty dir keeps the Java
// output directory.
func (g *Generator) NativeFile(dir, name string) *Generator {
	g.cfg.NativeDir = dir
	g.cfg.NativeFile = name
	return g
}

// ReplaceDuplicates lets a later enum replace an earlier one with the same
// Java name instead of failing the build.
func (g *Generator) ReplaceDuplicates() *Generator {
	g.cfg.Collision = "replace"
	return g
}

// Logger sets the logger of the build.
func (g *Generator) Logger(l *slog.Logger) *Generator {
	g.logger = l
	return g
}

// Config returns a copy of the configuration built so far.
func (g *Generator) Config() Config {
	return g.cfg
}

// ToDir generates into dir.
// This is a terminal operation that writes files to disk.
func (g *Generator) ToDir(ctx context.Context, dir string) (*Result, error) {
	cfg := g.cfg
	cfg.OutDir = dir
	return Generate(ctx, &cfg, Options{Logger: g.logger})
}

// ToSinks generates into the given sinks instead of the filesystem.
func (g *Generator) ToSinks(ctx context.Context, javaSink, nativeSink sink.OutputSink) (*Result, error) {
	cfg := g.cfg
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return Generate(ctx, &cfg, Options{JavaSink: javaSink, NativeSink: nativeSink, Logger: g.logger})
}

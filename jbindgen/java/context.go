package java

import (
	"log/slog"

	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typemap"
)

// Context is the build-wide state every generation step works on.
// It is not safe for concurrent use: steps run one after another, and a
// step that converts a type must run after the type was registered.
type Context struct {
	// Package is the Java package generated classes are declared in.
	Package string

	// Graph is the conversion graph shared by the whole build.
	Graph *typemap.Graph

	// Native accumulates the Go glue of the build.
	Native *NativeModule

	// Files receives the Java sources.
	Files *sink.WriteCache

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewContext returns a Context with a fresh graph and native module.
func NewContext(pkg, nativePkg string, files *sink.WriteCache, policy typemap.CollisionPolicy) *Context {
	return &Context{
		Package: pkg,
		Graph:   typemap.NewGraph(policy),
		Native:  NewNativeModule(nativePkg),
		Files:   files,
	}
}

func (c *Context) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

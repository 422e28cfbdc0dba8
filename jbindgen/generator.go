package jbindgen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/java"
	"github.com/broady/jbind/jbindgen/provider"
	"github.com/broady/jbind/jbindgen/sink"
	"github.com/broady/jbind/jbindgen/typemap"
)

// Options are the collaborators of a build. Zero values select the
// filesystem and slog.Default().
type Options struct {
	// JavaSink receives the Java sources. Default: OutDir on disk.
	JavaSink sink.OutputSink

	// NativeSink receives the Go glue. Default: NativeDir on disk.
	NativeSink sink.OutputSink

	Logger *slog.Logger
}

// Result describes a finished build.
type Result struct {
	Enums []*java.EnumResult

	// NativePath is the glue file, relative to NativeDir.
	NativePath   string
	NativeStatus sink.WriteStatus

	// Graph is the conversion graph the build produced.
	Graph *typemap.Graph

	Warnings []ir.Warning
}

// Generate loads the enum definitions named by cfg and writes their bindings.
//
// Enums are generated in definition order. Every failing enum is reported;
// the Go glue is only written when all of them succeeded.
func Generate(ctx context.Context, cfg *Config, opts Options) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := cfg.CollisionPolicy()
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.JavaSink == nil {
		opts.JavaSink = sink.NewFilesystemSink(cfg.OutDir)
	}
	if opts.NativeSink == nil {
		opts.NativeSink = sink.NewFilesystemSink(cfg.NativeDir)
	}

	defs, err := loadDefinitions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("definitions loaded", slog.Int("enums", len(defs)))

	c := java.NewContext(cfg.Package, cfg.NativePackage, sink.NewWriteCache(opts.JavaSink), policy)
	c.Logger = log

	result := &Result{Graph: c.Graph, NativePath: cfg.NativeFile}
	var errs diag.List
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := java.GenerateEnum(ctx, c, def)
		if err != nil {
			errs.Add(err)
			continue
		}
		result.Enums = append(result.Enums, res)
	}

	result.Warnings = c.Graph.Warnings()
	for _, w := range result.Warnings {
		attrs := []any{slog.String("code", w.Code), slog.String("type", w.TypeName)}
		if w.Source != nil {
			attrs = append(attrs, slog.String("source", w.Source.String()))
		}
		log.Warn(w.Message, attrs...)
	}

	if err := errs.Err(); err != nil {
		return result, err
	}

	native, err := c.Native.Render(cfg.NativeFile)
	if err != nil {
		return result, fmt.Errorf("render native glue: %w", err)
	}
	status, err := sink.NewWriteCache(opts.NativeSink).Update(ctx, cfg.NativeFile, native)
	if err != nil {
		return result, diag.Wrap(diag.CodeWriteFailed, ir.Source{}, err, "write "+cfg.NativeFile)
	}
	result.NativeStatus = status
	log.Info("native glue updated",
		slog.String("path", cfg.NativeFile),
		slog.Int("fragments", len(c.Native.Fragments())),
		slog.String("status", status.String()),
	)
	return result, nil
}

// Check loads the definitions named by cfg and generates them without
// writing anything. It reports the same diagnostics Generate would.
func Check(ctx context.Context, cfg *Config, logger *slog.Logger) (*Result, error) {
	return Generate(ctx, cfg, Options{
		JavaSink:   sink.NewMemorySink(),
		NativeSink: sink.NewMemorySink(),
		Logger:     logger,
	})
}

func loadDefinitions(ctx context.Context, cfg *Config) ([]*ir.EnumDefinition, error) {
	var providers []provider.Provider
	if len(cfg.Definitions) > 0 {
		providers = append(providers, &provider.FileProvider{Files: cfg.Definitions})
	}
	if len(cfg.Packages) > 0 {
		providers = append(providers, &provider.SourceProvider{
			Packages:       cfg.Packages,
			TrimTypePrefix: cfg.TrimTypePrefix,
			OnlyMarked:     cfg.OnlyMarked,
		})
	}
	return provider.Collect(ctx, providers...)
}

// Package jbindgen drives a jbind build: it loads the configuration and the
// enum definitions, generates every binding, and writes the Java classes
// and the Go glue.
package jbindgen

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/schema"
	"github.com/pelletier/go-toml"

	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/internal/validation"
	"github.com/broady/jbind/jbindgen/ir"
	"github.com/broady/jbind/jbindgen/typemap"
)

// DefaultConfigFile is the configuration file looked up by the CLI.
const DefaultConfigFile = "jbind.toml"

// Config holds the configuration of a build.
type Config struct {
	// OutDir is the directory Java sources are written to.
	OutDir string `toml:"out_dir" schema:"out_dir" validate:"required"`

	// Package is the Java package of the generated classes, e.g. "com.example".
	Package string `toml:"package" schema:"package" validate:"required,java_package"`

	// NativeDir is the directory the Go glue is written to.
	// Default: OutDir
	NativeDir string `toml:"native_dir" schema:"native_dir"`

	// NativeFile is the name of the Go glue file.
	// Default: "jni_glue.go"
	NativeFile string `toml:"native_file" schema:"native_file" validate:"omitempty,endswith=.go"`

	// NativePackage is the Go package name of the glue file.
	// Default: "jni"
	NativePackage string `toml:"native_package" schema:"native_package" validate:"omitempty,go_ident"`

	// Collision decides what happens when two enums bind the same Java name:
	// "reject" (default) fails the build, "replace" keeps the later one.
	Collision string `toml:"collision" schema:"collision" validate:"omitempty,oneof=reject replace"`

	// Definitions are YAML definition files.
	Definitions []string `toml:"definitions" schema:"definitions"`

	// Packages are Go packages whose enums are bound.
	Packages []string `toml:"packages" schema:"packages"`

	// TrimTypePrefix drops the type name from the Java names of Go constants,
	// so ColorRed becomes Red.
	TrimTypePrefix bool `toml:"trim_type_prefix" schema:"trim_type_prefix"`

	// OnlyMarked binds only Go types marked //jbind:enum.
	OnlyMarked bool `toml:"only_marked" schema:"only_marked"`
}

var overrideDecoder = schema.NewDecoder()

// LoadConfig reads a TOML configuration file. Relative paths in it are
// resolved against the directory of the file.
func LoadConfig(path string) (*Config, error) {
	src := ir.Source{File: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Wrap(diag.CodeInvalidConfig, src, err, "read config")
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, diag.Wrap(diag.CodeInvalidConfig, src, err, "parse config")
	}
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.OutDir = resolve(c.OutDir)
	c.NativeDir = resolve(c.NativeDir)
	for i, d := range c.Definitions {
		c.Definitions[i] = resolve(d)
	}
}

// ApplyOverrides sets configuration fields from "key=value" pairs, keyed by
// their TOML names. Repeating a key of a list field appends to the list;
// the first occurrence replaces the configured list.
func (c *Config) ApplyOverrides(pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	values := make(url.Values)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return diag.Errorf(diag.CodeInvalidConfig, ir.Source{}, "override %q: expected key=value", pair)
		}
		values.Add(strings.TrimSpace(key), value)
	}
	if err := overrideDecoder.Decode(c, values); err != nil {
		return diag.Wrap(diag.CodeInvalidConfig, ir.Source{}, err, "apply overrides")
	}
	return nil
}

// Validate checks the configuration before anything is generated.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return diag.Errorf(diag.CodeInvalidConfig, ir.Source{}, "invalid config: %s",
			strings.Join(validation.Messages(err), "; "))
	}
	if len(c.Definitions) == 0 && len(c.Packages) == 0 {
		return diag.New(diag.CodeInvalidConfig, ir.Source{}, "invalid config: no definitions or packages to bind")
	}
	return nil
}

// CollisionPolicy returns the graph collision policy selected by Collision.
func (c *Config) CollisionPolicy() (typemap.CollisionPolicy, error) {
	p, err := typemap.ParseCollisionPolicy(c.Collision)
	if err != nil {
		return p, diag.Wrap(diag.CodeInvalidConfig, ir.Source{}, err, "collision")
	}
	return p, nil
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg

	if result.NativeDir == "" {
		result.NativeDir = result.OutDir
	}
	if result.NativeFile == "" {
		result.NativeFile = "jni_glue.go"
	}
	if result.NativePackage == "" {
		result.NativePackage = "jni"
	}
	if result.Collision == "" {
		result.Collision = typemap.RejectDuplicates.String()
	}

	return &result
}

// Package flags holds the options shared by the jbind commands.
package flags

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/broady/jbind/jbindgen"
)

// Stderr is where commands log.
var Stderr io.Writer = os.Stderr

// Common are the flags every build command accepts.
type Common struct {
	Config  string   `help:"Configuration file." short:"c" default:"jbind.toml" type:"path"`
	Set     []string `help:"Override a configuration value (key=value, repeatable)." short:"s" placeholder:"KEY=VALUE"`
	Verbose bool     `help:"Log every step." short:"v"`
}

// LoadConfig reads the configuration file and applies the overrides. A
// missing default file is allowed when overrides supply everything.
func (c *Common) LoadConfig() (*jbindgen.Config, error) {
	cfg, err := jbindgen.LoadConfig(c.Config)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || len(c.Set) == 0 {
			return nil, err
		}
		cfg = &jbindgen.Config{}
	}
	if err := cfg.ApplyOverrides(c.Set); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger returns the logger for the command, writing to w.
func (c *Common) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

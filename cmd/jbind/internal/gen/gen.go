package gen

import (
	"context"
	"fmt"
	"os"

	"github.com/broady/jbind/cmd/jbind/internal/flags"
	"github.com/broady/jbind/jbindgen"
	"github.com/broady/jbind/jbindgen/sink"
)

type Cmd struct {
	flags.Common `embed:""`
	PrintGraph bool `help:"Print the conversion graph after generating." name:"print-graph"`
}

func (c *Cmd) Run() error {
	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	res, err := jbindgen.Generate(context.Background(), cfg, jbindgen.Options{
		Logger: c.Logger(flags.Stderr),
	})
	if err != nil {
		return err
	}

	written := 0
	for _, e := range res.Enums {
		if e.Status == sink.StatusWritten {
			written++
		}
	}
	fmt.Printf("✓ %d enums, %d Java files written, glue %s\n", len(res.Enums), written, res.NativeStatus)

	if c.PrintGraph {
		jbindgen.WriteGraphTable(os.Stdout, res.Graph)
	}
	return nil
}

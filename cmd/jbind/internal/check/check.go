package check

import (
	"context"
	"fmt"

	"github.com/broady/jbind/cmd/jbind/internal/flags"
	"github.com/broady/jbind/jbindgen"
)

type Cmd struct {
	flags.Common `embed:""`
}

func (c *Cmd) Run() error {
	cfg, err := c.LoadConfig()
	if err != nil {
		return err
	}

	res, err := jbindgen.Check(context.Background(), cfg, c.Logger(flags.Stderr))
	if err != nil {
		return err
	}

	items := 0
	for _, e := range res.Enums {
		items += e.Items
	}
	fmt.Printf("✓ %d enums, %d items\n", len(res.Enums), items)
	if n := len(res.Warnings); n > 0 {
		fmt.Printf("! %d warnings\n", n)
	}
	return nil
}

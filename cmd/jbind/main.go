package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/jbind/cmd/jbind/internal/check"
	"github.com/broady/jbind/cmd/jbind/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Java enums and Go JNI glue."`
	Check   check.Cmd  `cmd:"" help:"Validate configuration and definitions without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("jbind"),
		kong.Description("Generate Java bindings for Go enums."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/broady/wipgen/cmd/wipgen/internal/check"
	"github.com/broady/wipgen/cmd/wipgen/internal/gen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Go bindings from protocol.json files."`
	Check   check.Cmd  `cmd:"" help:"Validate protocol.json files and dry-run generation without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("wipgen"),
		kong.Description("Generate Go bindings for inspector protocols."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

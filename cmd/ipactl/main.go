// ipactl inspects the IPA endpoint and resource tables and runs the
// emulation daemon.
package main

import (
	"github.com/alecthomas/kong"

	"github.com/frobware/go-ipa/cmd/ipactl/cli"
)

func main() {
	var c cli.CLI
	ctx := kong.Parse(&c, cli.KongOptions()...)
	ctx.FatalIfErrorf(ctx.Run(&c))
}

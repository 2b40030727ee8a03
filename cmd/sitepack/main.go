package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitepack/cmd/sitepack/commands"
	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("sitepack"),
		kong.Description("Assemble bundler build descriptors for sitepack projects."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	global := &commands.Global{Logger: slog.Default(), Out: os.Stdout}
	if err := parser.Run(global, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}

package commands

import (
	"fmt"
	"path/filepath"

	"git.home.luguber.info/inful/sitepack/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing project file"`
	Output string `short:"o" name:"output" help:"Directory to write sitepack.yaml into" type:"path"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	path := root.Config
	if i.Output != "" {
		path = filepath.Join(i.Output, config.DefaultFileName)
	}
	if path == "" {
		path = config.DefaultFileName
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Wrote %s\n", path)
	return nil
}

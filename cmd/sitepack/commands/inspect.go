package commands

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/pack"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	ModeFlags `embed:""`
	Format    string `short:"f" help:"Output format (yaml|json)" default:"yaml"`
	Out       string `short:"o" help:"Write the descriptor to this file instead of stdout" type:"path"`
}

func (c *InspectCmd) Run(g *Global, root *CLI) error {
	mode, err := c.mode()
	if err != nil {
		return err
	}
	format, err := pack.ParseFormat(c.Format)
	if err != nil {
		return ferrors.ValidationError(fmt.Sprintf("--format: %v", err)).Build()
	}
	proj, err := loadProject(g, root)
	if err != nil {
		return err
	}

	d, err := pack.New(proj.cfg, pack.WithLogger(g.Logger)).Assemble(mode, pack.RuntimeFromOS())
	if err != nil {
		return err
	}
	return writeDescriptor(d, format, c.Out, g.Out)
}

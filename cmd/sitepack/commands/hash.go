package commands

import (
	"fmt"

	"git.home.luguber.info/inful/sitepack/internal/pack"
	"git.home.luguber.info/inful/sitepack/internal/toolchain"
)

// HashCmd implements the 'hash' command.
type HashCmd struct {
	ModeFlags `embed:""`
}

func (c *HashCmd) Run(g *Global, root *CLI) error {
	mode, err := c.mode()
	if err != nil {
		return err
	}
	proj, err := loadProject(g, root)
	if err != nil {
		return err
	}
	versions, err := toolchain.Resolve(toolchain.ForProject(proj.cfg.Context, proj.cfg.Tools), toolchain.Tracked)
	if err != nil {
		return err
	}
	id := pack.DeriveCacheIdentity(versions, proj.cfg.Context, mode, proj.cfg.Customize)

	fmt.Fprintf(g.Out, "mode:       %s\n", mode)
	for _, v := range versions {
		fmt.Fprintf(g.Out, "tool:       %s %s\n", v.Name, v.Version)
	}
	fmt.Fprintf(g.Out, "cache_dir:  %s\n", id.Directory)
	fmt.Fprintf(g.Out, "cache_id:   %s\n", id.Identifier)
	fmt.Fprintf(g.Out, "snapshot:   %s\n", proj.cfg.Snapshot())
	return nil
}

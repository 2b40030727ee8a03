package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

// Locate picks the project file to load. An explicit path must exist. Otherwise
// sitepack.yaml in dir is used, then the per-user file
//
//	Linux: $XDG_CONFIG_HOME/sitepack/sitepack.yaml
//	macOS: ~/Library/Application Support/sitepack/sitepack.yaml
func Locate(explicit, dir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", ferrors.NotFoundError("project file not found").
				WithContext("path", explicit).
				Build()
		}
		return explicit, nil
	}
	local := filepath.Join(dir, DefaultFileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	if p, err := xdg.SearchConfigFile(filepath.Join("sitepack", DefaultFileName)); err == nil {
		return p, nil
	}
	return "", ferrors.NotFoundError("no project file found").
		WithContext("searched", []string{local, filepath.Join(xdg.ConfigHome, "sitepack", DefaultFileName)}).
		Build()
}

package pack

import (
	"os"

	"golang.org/x/term"
)

// Mode selects the build flavor: production or development, browser or server.
type Mode struct {
	Production bool
	Server     bool
}

func (m Mode) Label() string {
	if m.Production {
		return "production"
	}
	return "development"
}

func (m Mode) Target() string {
	if m.Server {
		return "server"
	}
	return "browser"
}

func (m Mode) String() string { return m.Label() + "/" + m.Target() }

const (
	// TestEnvVar marks test runs; any non-empty value enables test mode.
	TestEnvVar = "SITEPACK_TEST"
	// SiteModeEnvVar carries the site-level mode exposed to the bundle.
	SiteModeEnvVar = "SITEPACK_MODE"
)

// Runtime holds the process facts assembly depends on. Callers sample it once
// so that assembly itself never reads global state.
type Runtime struct {
	Test        bool
	NodeEnv     string
	SiteMode    string
	Interactive bool
	Environ     []string
}

// RuntimeFromOS samples the current process.
func RuntimeFromOS() Runtime {
	return Runtime{
		Test:        os.Getenv(TestEnvVar) != "",
		NodeEnv:     os.Getenv("NODE_ENV"),
		SiteMode:    os.Getenv(SiteModeEnvVar),
		Interactive: term.IsTerminal(int(os.Stdout.Fd())),
		Environ:     os.Environ(),
	}
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitepack/internal/config"
	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/logfields"
	"git.home.luguber.info/inful/sitepack/internal/pack"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Project file path (default: ./sitepack.yaml, then the user config dir)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log format (text|json); overrides the project file"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Inspect InspectCmd `cmd:"" help:"Assemble and print the build descriptor"`
	Hash    HashCmd    `cmd:"" help:"Print the cache identity and project snapshot"`
	Watch   WatchCmd   `cmd:"" help:"Re-assemble the descriptor whenever project inputs change"`
	Init    InitCmd    `cmd:"" help:"Write an example project file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	slog.SetDefault(newLogger(os.Stderr, level, config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

func newLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func slogLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// project is a loaded project file together with where it came from.
type project struct {
	path string
	cfg  *config.Config
}

// loadProject locates and loads the project file, then lets its logging
// section take over unless flags already decided.
func loadProject(g *Global, root *CLI) (*project, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, ferrors.RuntimeError("cannot determine working directory").WithCause(err).Build()
	}
	path, err := config.Locate(root.Config, wd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if root.Verbose {
		level = config.LogLevelDebug
	}
	format := cfg.Logging.Format
	if root.LogFormat != "" {
		format = config.NormalizeLogFormat(root.LogFormat)
	}
	g.Logger = newLogger(os.Stderr, level, format)
	slog.SetDefault(g.Logger)

	g.Logger.Debug("Project loaded", logfields.Path(path))
	return &project{path: path, cfg: cfg}, nil
}

// ModeFlags selects the descriptor flavor.
type ModeFlags struct {
	Mode   string `short:"m" help:"Build mode (production|development)" default:"development"`
	Server bool   `help:"Target the server bundle instead of the browser bundle"`
}

func (f ModeFlags) mode() (pack.Mode, error) {
	m, err := config.ParseBuildMode(f.Mode)
	if err != nil {
		return pack.Mode{}, ferrors.ValidationError(fmt.Sprintf("--mode: %v", err)).Build()
	}
	return pack.Mode{Production: m == config.BuildModeProduction, Server: f.Server}, nil
}

// writeDescriptor encodes d to path, or to fallback when path is empty.
func writeDescriptor(d *pack.Descriptor, format pack.Format, path string, fallback io.Writer) error {
	if path == "" {
		return pack.Encode(fallback, d, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return ferrors.FileSystemError("cannot create descriptor file").WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := pack.Encode(f, d, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

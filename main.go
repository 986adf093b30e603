package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"linite/internal/catalog"
	"linite/internal/config"
	"linite/internal/install"
	"linite/internal/logging"
	"linite/internal/models"
	"linite/internal/selection"
	"linite/internal/terminal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
)

// options are the parsed command line flags
type options struct {
	catalog    string
	configPath string
	debug      bool
	version    bool
	help       bool
	dryRun     bool
	noPreview  bool
	initConfig bool
	selectIDs  []string
}

func newFlagSet(opts *options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("linite", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.catalog, "catalog", "c", "", "app catalog (.json, .yaml)")
	fs.StringVar(&opts.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	fs.BoolVarP(&opts.debug, "debug", "d", false, "write a debug log")
	fs.BoolVarP(&opts.version, "version", "v", false, "show version")
	fs.BoolVarP(&opts.help, "help", "h", false, "show this help")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "print the install script for --select and exit")
	fs.BoolVar(&opts.noPreview, "no-preview", false, "launch the terminal without reviewing the script")
	fs.BoolVar(&opts.initConfig, "init-config", false, "write the default config file and exit")
	fs.StringSliceVar(&opts.selectIDs, "select", nil, "preselect apps by id (comma separated)")
	return fs
}

func usage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "linite - install a curated set of Linux apps")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: linite [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run without arguments to start the TUI.")
}

// setup holds everything main needs before the UI starts
type setup struct {
	opts     options
	cfg      *config.Config
	catalog  *models.Catalog
	selected []string
	logger   *zerolog.Logger
}

// prepare parses flags, reads config and loads the catalog. A nil setup with
// a zero code means main should exit successfully.
func prepare(args []string, stdout, stderr io.Writer) (*setup, int) {
	var opts options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, 2
	}

	if opts.help {
		usage(stdout, fs)
		return nil, 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "linite %s (built %s)\n", version, buildTime)
		return nil, 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, 1
	}

	if opts.initConfig {
		path := opts.configPath
		if path == "" {
			path = config.ConfigPath()
		}
		if err := cfg.Save(path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return nil, 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
		return nil, 0
	}

	// Flags override config
	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
	}
	if opts.debug {
		cfg.Debug = true
	}

	logger := logging.New(logging.Config{
		Enabled: cfg.Debug,
		Level:   "debug",
		LogFile: cfg.LogFile,
	})

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Catalog).Msg("catalog load failed")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return nil, 1
	}
	logger.Info().
		Str("path", cfg.Catalog).
		Int("categories", len(cat.Categories)).
		Int("apps", cat.Len()).
		Msg("catalog loaded")

	var ids []string
	for _, id := range opts.selectIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return &setup{opts: opts, cfg: cfg, catalog: cat, selected: ids, logger: logger}, 0
}

// preselect checks ids in state, failing on the first unknown one
func preselect(state *selection.State, ids []string) error {
	for _, id := range ids {
		if err := state.Toggle(id, true); err != nil {
			return err
		}
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	s, code := prepare(args, stdout, stderr)
	if s == nil {
		return code
	}

	if s.opts.dryRun {
		state := selection.New(s.catalog)
		if err := preselect(state, s.selected); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		req := install.Build(state.CurrentSelections())
		if req.Empty() {
			fmt.Fprintf(stderr, "Error: %v\n", install.ErrEmptySelection)
			return 1
		}
		fmt.Fprintln(stdout, install.Render(req, install.ScriptOptions{Remote: s.cfg.FlatpakRemote}))
		return 0
	}

	m := New(s.catalog, Options{
		Launcher:    terminal.New(s.cfg.PreferredTerminal),
		Remote:      s.cfg.FlatpakRemote,
		SkipPreview: s.opts.noPreview,
		Logger:      s.logger,
	})
	defer m.Close()
	if err := preselect(m.Selection(), s.selected); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		s.logger.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

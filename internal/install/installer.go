package install

import (
	"errors"

	"linite/internal/models"
	"linite/internal/terminal"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is where an install attempt ended up
type State string

const (
	StateIdle              State = "idle"
	StateRequestEmpty      State = "request empty"
	StateScriptWritten     State = "script written"
	StateScriptWriteFailed State = "script write failed"
	StateTerminalNotFound  State = "terminal not found"
	StateLaunchFailed      State = "launch failed"
	StateSpawned           State = "spawned"
)

// Launcher starts a terminal running a script
type Launcher interface {
	Launch(script string) (terminal.Result, error)
}

// Outcome records one install attempt. StateSpawned only means the terminal
// started; what the script does inside it is never observed.
type Outcome struct {
	ID         string
	State      State
	Request    Request
	Script     string
	ScriptPath string
	Terminal   string
}

// Installer runs install attempts: build, render, write, launch
type Installer struct {
	launcher Launcher
	dir      string
	opts     ScriptOptions
	logger   *zerolog.Logger
}

// NewInstaller creates an installer. dir is where scripts are written
// (os.TempDir when empty). A nil logger disables logging.
func NewInstaller(launcher Launcher, dir string, opts ScriptOptions, logger *zerolog.Logger) *Installer {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Installer{
		launcher: launcher,
		dir:      dir,
		opts:     opts,
		logger:   logger,
	}
}

// Prepare builds the request and renders its script without touching the filesystem
func (i *Installer) Prepare(selections []*models.AppEntry) (Outcome, error) {
	out := Outcome{
		ID:      uuid.NewString(),
		State:   StateIdle,
		Request: Build(selections),
	}
	if out.Request.Empty() {
		out.State = StateRequestEmpty
		return out, ErrEmptySelection
	}
	out.Script = Render(out.Request, i.opts)
	return out, nil
}

// Install runs a full attempt for selections
func (i *Installer) Install(selections []*models.AppEntry) (Outcome, error) {
	out, err := i.Prepare(selections)
	log := i.logger.With().Str("attempt", out.ID).Logger()
	if err != nil {
		log.Info().Msg("install requested with empty selection")
		return out, err
	}

	log.Info().
		Int("apt", len(out.Request.AptIDs)).
		Int("flatpak", len(out.Request.FlatpakIDs)).
		Msg("install requested")

	path, err := WriteScript(i.dir, out.Script)
	out.ScriptPath = path
	if err != nil {
		out.State = StateScriptWriteFailed
		log.Error().Err(err).Msg("writing install script")
		return out, err
	}
	out.State = StateScriptWritten
	log.Debug().Str("script", path).Msg("install script written")

	res, err := i.launcher.Launch(path)
	out.Terminal = res.Terminal
	if err != nil {
		out.State = StateLaunchFailed
		if errors.Is(err, terminal.ErrNotFound) {
			out.State = StateTerminalNotFound
		}
		log.Error().Err(err).Str("state", string(out.State)).Msg("launching terminal")
		return out, err
	}

	out.State = StateSpawned
	log.Info().
		Str("terminal", res.Terminal).
		Strs("args", res.Args).
		Str("script", path).
		Msg("terminal spawned")
	return out, nil
}

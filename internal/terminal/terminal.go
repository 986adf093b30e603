// Package terminal finds a terminal emulator and starts it on an install script.
package terminal

import (
	"errors"
	"fmt"
	"os/exec"
)

// ErrNotFound is returned when no candidate terminal is on PATH
var ErrNotFound = errors.New("no terminal emulator found")

// LaunchError wraps a failure to start the chosen terminal
type LaunchError struct {
	Terminal string
	Err      error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch terminal %s: %v", e.Terminal, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// DefaultCandidates is the probe order. The first one found wins.
var DefaultCandidates = []string{
	"cosmic-term",
	"gnome-terminal",
	"tilix",
	"x-terminal-emulator",
	"konsole",
	"xfce4-terminal",
}

// argsByName holds the terminals that need their own invocation form
var argsByName = map[string]func(script string) []string{
	"cosmic-term":    separatorArgs,
	"gnome-terminal": separatorArgs,
}

// separatorArgs: term -- bash -c SCRIPT
func separatorArgs(script string) []string {
	return []string{"--", "bash", "-c", script}
}

// fallbackArgs: term -e "bash -c 'SCRIPT'"
// The path is not escaped, so a script path containing a single quote breaks the command.
func fallbackArgs(script string) []string {
	return []string{"-e", fmt.Sprintf("bash -c '%s'", script)}
}

// Args returns the arguments used to run script in the named terminal
func Args(name, script string) []string {
	if fn, ok := argsByName[name]; ok {
		return fn(script)
	}
	return fallbackArgs(script)
}

// Result describes a spawned terminal. Spawning says nothing about whether the
// installation inside it succeeds.
type Result struct {
	Terminal string   // Candidate name
	Path     string   // Resolved executable
	Args     []string // Arguments passed to it
}

// Launcher probes Candidates in order and starts the first one available
type Launcher struct {
	Candidates []string
	LookPath   func(file string) (string, error)
	Start      func(path string, args ...string) error
}

// New creates a launcher over the default candidates. A non-empty preferred
// terminal is probed before them.
func New(preferred string) *Launcher {
	candidates := make([]string, 0, len(DefaultCandidates)+1)
	if preferred != "" {
		candidates = append(candidates, preferred)
	}
	for _, name := range DefaultCandidates {
		if name != preferred {
			candidates = append(candidates, name)
		}
	}

	return &Launcher{
		Candidates: candidates,
		LookPath:   exec.LookPath,
		Start:      startDetached,
	}
}

// Detect returns the first available candidate and its resolved path
func (l *Launcher) Detect() (string, string, error) {
	for _, name := range l.Candidates {
		if path, err := l.LookPath(name); err == nil {
			return name, path, nil
		}
	}
	return "", "", ErrNotFound
}

// Available lists every candidate present on PATH, in probe order
func (l *Launcher) Available() []string {
	var found []string
	for _, name := range l.Candidates {
		if _, err := l.LookPath(name); err == nil {
			found = append(found, name)
		}
	}
	return found
}

// Launch starts the first available terminal running script and returns
// without waiting for it.
func (l *Launcher) Launch(script string) (Result, error) {
	name, path, err := l.Detect()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Terminal: name,
		Path:     path,
		Args:     Args(name, script),
	}
	if err := l.Start(res.Path, res.Args...); err != nil {
		return res, &LaunchError{Terminal: name, Err: err}
	}
	return res, nil
}

// startDetached starts the process and reaps it in the background. Its exit
// status is discarded.
func startDetached(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

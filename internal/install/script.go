package install

import (
	"fmt"
	"os"
	"strings"
)

// DefaultRemote is the flatpak remote packages are installed from
const DefaultRemote = "flathub"

// ScriptPattern is the os.CreateTemp pattern for generated scripts
const ScriptPattern = "linite_install_*.sh"

// ScriptOptions tunes script rendering
type ScriptOptions struct {
	Remote string // Flatpak remote, DefaultRemote when empty
}

// Render builds the install script for req.
// IDs are written as-is; they must already be safe shell words.
func Render(req Request, opts ScriptOptions) string {
	remote := opts.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	lines := []string{
		"#!/bin/bash",
		"echo 'Starting installation...'",
	}

	if len(req.AptIDs) > 0 {
		apps := strings.Join(req.AptIDs, " ")
		lines = append(lines,
			"echo 'Updating apt repositories...'",
			"sudo apt update",
			fmt.Sprintf("echo 'Installing apt packages: %s'", apps),
			fmt.Sprintf("sudo apt install -y %s", apps),
		)
	}

	if len(req.FlatpakIDs) > 0 {
		apps := strings.Join(req.FlatpakIDs, " ")
		lines = append(lines,
			fmt.Sprintf("echo 'Installing flatpak packages: %s'", apps),
			fmt.Sprintf("flatpak install -y %s %s", remote, apps),
		)
	}

	lines = append(lines,
		"echo 'Installation complete!'",
		"echo 'Press Enter to close this window.'",
		"read",
	)

	return strings.Join(lines, "\n")
}

// ScriptWriteError wraps a failure to create or chmod the script file
type ScriptWriteError struct {
	Err error
}

func (e *ScriptWriteError) Error() string {
	return fmt.Sprintf("failed to create temporary installation script: %v", e.Err)
}

func (e *ScriptWriteError) Unwrap() error {
	return e.Err
}

// WriteScript writes text to a new temp file in dir (os.TempDir when empty)
// and adds owner execute permission. It returns the file path.
func WriteScript(dir, text string) (string, error) {
	f, err := os.CreateTemp(dir, ScriptPattern)
	if err != nil {
		return "", &ScriptWriteError{Err: err}
	}
	path := f.Name()

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return path, &ScriptWriteError{Err: err}
	}
	if err := f.Close(); err != nil {
		return path, &ScriptWriteError{Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return path, &ScriptWriteError{Err: err}
	}
	if err := os.Chmod(path, info.Mode()|0100); err != nil {
		return path, &ScriptWriteError{Err: err}
	}

	return path, nil
}

// Package install turns a selection into a shell script and hands it to a terminal.
package install

import (
	"errors"

	"linite/internal/models"
)

// ErrEmptySelection is returned when nothing is selected for installation
var ErrEmptySelection = errors.New("no apps selected")

// Request is the selection partitioned by package manager
type Request struct {
	AptIDs     []string
	FlatpakIDs []string
}

// Empty reports whether there is nothing to install
func (r Request) Empty() bool {
	return len(r.AptIDs) == 0 && len(r.FlatpakIDs) == 0
}

// Len returns the total number of identifiers
func (r Request) Len() int {
	return len(r.AptIDs) + len(r.FlatpakIDs)
}

// Build partitions selections by installer type, keeping their order
func Build(selections []*models.AppEntry) Request {
	req := Request{AptIDs: []string{}, FlatpakIDs: []string{}}
	for _, app := range selections {
		switch app.Type {
		case models.InstallerApt:
			req.AptIDs = append(req.AptIDs, app.ID)
		case models.InstallerFlatpak:
			req.FlatpakIDs = append(req.FlatpakIDs, app.ID)
		}
	}
	return req
}

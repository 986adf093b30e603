package models

import "fmt"

// InstallerType is the package manager an app is installed with
type InstallerType string

const (
	InstallerApt     InstallerType = "apt"
	InstallerFlatpak InstallerType = "flatpak"
)

// ParseInstallerType converts a descriptor value to an InstallerType
func ParseInstallerType(s string) (InstallerType, error) {
	switch InstallerType(s) {
	case InstallerApt, InstallerFlatpak:
		return InstallerType(s), nil
	}
	return "", fmt.Errorf("unknown installer type %q (want apt or flatpak)", s)
}

// AppEntry is one installable application. Entries are never mutated after loading.
type AppEntry struct {
	ID          string        // Package or application identifier
	Name        string        // Display name
	Description string        // Optional short description
	Type        InstallerType // apt or flatpak
	Category    string        // Owning category
}

// Tooltip returns the install hint shown for the entry
func (a *AppEntry) Tooltip() string {
	return fmt.Sprintf("Install via %s: %s", a.Type, a.ID)
}

// Category is a named, ordered group of apps
type Category struct {
	Name string
	Apps []*AppEntry
}

// Catalog holds every category in descriptor order
type Catalog struct {
	Categories []*Category
}

// AppDefinition is the descriptor record for a single app
type AppDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type" yaml:"type"`
}

// NewAppEntry creates an entry from a definition that has already been validated
func NewAppEntry(def AppDefinition, category string) *AppEntry {
	return &AppEntry{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Type:        InstallerType(def.Type),
		Category:    category,
	}
}

// Apps returns every entry in display order
func (c *Catalog) Apps() []*AppEntry {
	var apps []*AppEntry
	for _, cat := range c.Categories {
		apps = append(apps, cat.Apps...)
	}
	return apps
}

// Lookup finds an entry by ID
func (c *Catalog) Lookup(id string) *AppEntry {
	for _, cat := range c.Categories {
		for _, app := range cat.Apps {
			if app.ID == id {
				return app
			}
		}
	}
	return nil
}

// Len returns the number of apps across all categories
func (c *Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Apps)
	}
	return n
}

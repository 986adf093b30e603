// Package catalog loads the app catalog descriptor shown in the checklist.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"linite/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the descriptor looked up relative to the working directory
const DefaultPath = "apps.json"

// ErrorKind classifies a LoadError
type ErrorKind string

const (
	KindMissingFile  ErrorKind = "missing file"
	KindMalformed    ErrorKind = "malformed"
	KindMissingField ErrorKind = "missing field"
	KindInvalidType  ErrorKind = "invalid type"
	KindDuplicateID  ErrorKind = "duplicate id"

	KindDuplicateCategory ErrorKind = "duplicate category"
)

// LoadError is returned for any catalog that cannot be used. No partial catalog
// is ever returned alongside it.
type LoadError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// category is one descriptor entry before validation
type category struct {
	name string
	defs []models.AppDefinition
}

// Load reads and validates the descriptor at path. The format is picked from the
// file extension: .yaml/.yml is YAML, anything else is JSON.
func Load(path string) (*models.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Kind: KindMissingFile, Err: err}
		}
		return nil, &LoadError{Path: path, Kind: KindMalformed, Err: err}
	}

	return Parse(path, data)
}

// Parse decodes descriptor bytes. name is used for error messages and to pick the format.
func Parse(name string, data []byte) (*models.Catalog, error) {
	var (
		cats []category
		err  error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		cats, err = decodeYAML(data)
	default:
		cats, err = decodeJSON(data)
	}
	if err != nil {
		return nil, &LoadError{Path: name, Kind: KindMalformed, Err: err}
	}

	return build(name, cats)
}

// decodeJSON walks the top-level object token by token so category order survives
func decodeJSON(data []byte) ([]category, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("top level must be an object of categories")
	}

	var cats []category
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}

		var defs []models.AppDefinition
		if err := dec.Decode(&defs); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		cats = append(cats, category{name: name, defs: defs})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level object")
	}

	return cats, nil
}

// decodeYAML uses the node tree so mapping order survives
func decodeYAML(data []byte) ([]category, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level must be a mapping of categories")
	}

	var cats []category
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: category name must be a scalar", key.Line)
		}
		name := key.Value
		var defs []models.AppDefinition
		if err := root.Content[i+1].Decode(&defs); err != nil {
			return nil, fmt.Errorf("category %q: %w", name, err)
		}
		cats = append(cats, category{name: name, defs: defs})
	}

	return cats, nil
}

func build(name string, cats []category) (*models.Catalog, error) {
	seen := make(map[string]string)
	names := make(map[string]bool)
	catalog := &models.Catalog{}

	for _, cat := range cats {
		if names[cat.name] {
			return nil, &LoadError{
				Path: name,
				Kind: KindDuplicateCategory,
				Err:  fmt.Errorf("category %q is defined more than once", cat.name),
			}
		}
		names[cat.name] = true

		group := &models.Category{Name: cat.name}

		for i, def := range cat.defs {
			if err := checkRequired(def); err != nil {
				return nil, &LoadError{
					Path: name,
					Kind: KindMissingField,
					Err:  fmt.Errorf("category %q entry %d: %w", cat.name, i, err),
				}
			}
			if _, err := models.ParseInstallerType(def.Type); err != nil {
				return nil, &LoadError{
					Path: name,
					Kind: KindInvalidType,
					Err:  fmt.Errorf("category %q app %q: %w", cat.name, def.ID, err),
				}
			}
			if other, ok := seen[def.ID]; ok {
				return nil, &LoadError{
					Path: name,
					Kind: KindDuplicateID,
					Err:  fmt.Errorf("app %q appears in %q and %q", def.ID, other, cat.name),
				}
			}
			seen[def.ID] = cat.name

			group.Apps = append(group.Apps, models.NewAppEntry(def, cat.name))
		}

		catalog.Categories = append(catalog.Categories, group)
	}

	return catalog, nil
}

func checkRequired(def models.AppDefinition) error {
	switch {
	case strings.TrimSpace(def.ID) == "":
		return fmt.Errorf("id is required")
	case strings.TrimSpace(def.Name) == "":
		return fmt.Errorf("name is required")
	case strings.TrimSpace(def.Type) == "":
		return fmt.Errorf("type is required")
	}
	return nil
}

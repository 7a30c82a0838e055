// Package sidebar loads the documentation site's navigation configuration.
// The file is read once at startup and cached in memory; it is static
// config, not logic.
package sidebar

import (
	"fmt"
	"os"

	yamlv3 "gopkg.in/yaml.v3"
)

// Item is one navigation entry. Items nest arbitrarily deep.
type Item struct {
	Label string `yaml:"label" json:"label"`
	Link  string `yaml:"link,omitempty" json:"link,omitempty"`
	Items []Item `yaml:"items,omitempty" json:"items,omitempty"`
}

// Sidebar is the navigation configuration served at /api/sidebar.
type Sidebar struct {
	Items []Item `yaml:"sidebar" json:"sidebar"`
}

// Load reads the sidebar YAML file at path. A missing file yields an empty
// sidebar, not an error; a malformed file is an error.
func Load(path string) (*Sidebar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sidebar{}, nil
		}
		return nil, fmt.Errorf("reading sidebar %s: %w", path, err)
	}

	var sb Sidebar
	if err := yamlv3.Unmarshal(data, &sb); err != nil {
		return nil, fmt.Errorf("parsing sidebar %s: %w", path, err)
	}
	return &sb, nil
}

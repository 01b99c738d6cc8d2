package roadmap

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/ml_roadmap.yml
var defaultCatalogYAML []byte

type catalogDocument struct {
	Weeks    []weekDocument    `yaml:"weeks"`
	Projects []projectDocument `yaml:"projects"`
}

type weekDocument struct {
	Week  int           `yaml:"week"`
	Title string        `yaml:"title"`
	Goals []string      `yaml:"goals"`
	Days  []dayDocument `yaml:"days,omitempty"`
}

type dayDocument struct {
	Day    int      `yaml:"day"`
	Title  string   `yaml:"title"`
	Topics []string `yaml:"topics,omitempty"`
}

type projectDocument struct {
	Day         int      `yaml:"day"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Features    []string `yaml:"features"`
}

// Default returns the embedded machine learning roadmap.
func Default() (*Catalog, error) {
	catalog, err := Parse(defaultCatalogYAML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded roadmap: %w", err)
	}
	return catalog, nil
}

// Load reads the catalog at path, falling back to the embedded roadmap when
// path is empty or the file cannot be used.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	content, err := os.ReadFile(path)
	if err == nil {
		catalog, parseErr := Parse(content)
		if parseErr == nil {
			return catalog, nil
		}
		err = parseErr
	}
	slog.Default().Warn("failed to load a roadmap catalog, using the embedded roadmap",
		slog.String("path", path),
		slog.Any("error", err),
	)
	return Default()
}

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
func Parse(content []byte) (*Catalog, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var doc catalogDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoder.Decode() > %w", err)
	}
	return newCatalog(doc)
}

package benchmark

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// manifestName is the project manifest file both poetry and uv consume.
const manifestName = "pyproject.toml"

// poetryManifest is the minimal pyproject.toml the poetry-style trial
// starts from. Packages are added afterwards via the add command.
type poetryManifest struct {
	Tool struct {
		Poetry struct {
			Name         string            `toml:"name"`
			Version      string            `toml:"version"`
			Description  string            `toml:"description"`
			Dependencies map[string]string `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// uvManifest is the minimal pyproject.toml the uv-style trial starts from
// in manifest mode.
type uvManifest struct {
	Project struct {
		Name           string   `toml:"name"`
		Version        string   `toml:"version"`
		Description    string   `toml:"description"`
		RequiresPython string   `toml:"requires-python"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
}

// writePoetryManifest writes the poetry project manifest into dir.
func writePoetryManifest(dir string) error {
	var m poetryManifest

	m.Tool.Poetry.Name = "benchmark"
	m.Tool.Poetry.Version = "0.1.0"
	m.Tool.Poetry.Dependencies = map[string]string{"python": "^3.10"}

	return writeManifest(dir, m)
}

// writeUVManifest writes the uv project manifest into dir.
func writeUVManifest(dir string) error {
	var m uvManifest

	m.Project.Name = "benchmark"
	m.Project.Version = "0.1.0"
	m.Project.RequiresPython = ">=3.10"
	m.Project.Dependencies = []string{}

	return writeManifest(dir, m)
}

func writeManifest(dir string, manifest any) error {
	f, err := os.Create(filepath.Join(dir, manifestName))
	if err != nil {
		return fmt.Errorf("creating %s: %w", manifestName, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(manifest); err != nil {
		return fmt.Errorf("encoding %s: %w", manifestName, err)
	}

	return nil
}

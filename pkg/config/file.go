package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file names probed when no explicit path is given.
var configFileNames = []string{"propview.yaml", "propview.yml"}

// LoadFile reads user options from a YAML file. The file must exist; use
// LoadProject when the file is optional.
func LoadFile(path string) (Options, error) {
	var opts Options

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return opts, nil
}

// LoadProject loads options for a project root. When explicitPath is set it
// must exist and parse; otherwise the conventional file names are probed in
// the root and a missing file yields zero options.
func LoadProject(projectRoot, explicitPath string) (Options, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}
	for _, name := range configFileNames {
		path := filepath.Join(projectRoot, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return Options{}, nil
}

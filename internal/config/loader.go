package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	settingsDir  = ".gitlanes"
	settingsFile = "settings.yaml"
)

// Path returns the location of the settings file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, settingsDir, settingsFile), nil
}

// Load reads and compiles the settings file, creating it with the
// git-flow model on first run.
func Load() (*Settings, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and compiles the settings file at path, creating it
// with the git-flow model when it does not exist.
func LoadFrom(path string) (*Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("first run, creating settings file", slog.String("path", path))
		if err := createDefault(path); err != nil {
			return nil, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the settings file: %w", err)
	}
	var def SettingsDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse the settings file: %w", err)
	}
	s, err := def.Compile()
	if err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Save writes a settings definition to path.
func Save(path string, def *SettingsDef) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create the settings directory: %w", err)
	}
	data, err := yaml.Marshal(def)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func createDefault(path string) error {
	def, err := BuiltinDef("git-flow")
	if err != nil {
		return err
	}
	return Save(path, def)
}

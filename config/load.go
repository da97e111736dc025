package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "flipside.yaml"

// Load overlays a YAML file on the defaults. Fields absent from the file
// keep their default value.
// Search order: customPath -> ~/.flipside/configs/flipside.yaml -> ./configs/flipside.yaml -> defaults
func Load(customPath string) (Settings, error) {
	cfg := Defaults()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, p := range []string{userConfigPath(fileName), filepath.Join("configs", fileName)} {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		// Start over from the defaults so a half-parsed file leaves nothing behind.
		next := Defaults()
		if err := yaml.Unmarshal(data, &next); err == nil {
			return next, nil
		}
	}
	return cfg, nil
}

// Marshal renders s as YAML, the format Load reads.
func Marshal(s Settings) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flipside", "configs", filename)
}

// Package configpaths locates the agent's configuration file across the
// working directory, the user config directory, and (on Unix) a
// system-wide fallback, in that priority order.
package configpaths

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the default config file path for the given
// format ("json", "yaml"/"yml", or "toml") under DefaultConfigDir.
func DefaultConfigPath(format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config."+normalizeExt(format)), nil
}

func normalizeExt(format string) string {
	switch format {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return "json"
	}
}

// EnsureDir creates the parent directory of filePath if it does not
// already exist.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}

// ConfigCandidatePaths builds the ordered list of paths to probe for a
// config file, grouped by format so each can be handed to the matching
// decoder. If userPath is non-empty it is tried first, in the group
// matching its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "hidxpad.json"))
	add(&yamlPaths, filepath.Join(wd, "hidxpad.yaml"))
	add(&yamlPaths, filepath.Join(wd, "hidxpad.yml"))
	add(&tomlPaths, filepath.Join(wd, "hidxpad.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if systemConfigDir != "" {
		add(&jsonPaths, filepath.Join(systemConfigDir, "config.json"))
		add(&yamlPaths, filepath.Join(systemConfigDir, "config.yaml"))
		add(&yamlPaths, filepath.Join(systemConfigDir, "config.yml"))
		add(&tomlPaths, filepath.Join(systemConfigDir, "config.toml"))
	}

	return
}

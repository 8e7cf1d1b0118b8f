//go:build !windows

package configpaths

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hidxpad"), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "hidxpad"), nil
	}
	return "", errors.New("HOME not set")
}

// systemConfigDir is consulted as a last-resort candidate for root-run
// installs; ordinary users keep config under DefaultConfigDir.
const systemConfigDir = "/etc/hidxpad"

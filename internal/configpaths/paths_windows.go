//go:build windows

package configpaths

import (
	"errors"
	"os"
	"path/filepath"
)

// DefaultConfigDir returns the platform-specific configuration directory.
func DefaultConfigDir() (string, error) {
	if appdata := os.Getenv("AppData"); appdata != "" {
		return filepath.Join(appdata, "hidxpad"), nil
	}
	return "", errors.New("AppData not set")
}

// systemConfigDir has no Windows equivalent; autorun installs still read
// from the per-user AppData directory.
const systemConfigDir = ""

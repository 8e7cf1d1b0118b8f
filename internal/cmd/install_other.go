//go:build !windows

package cmd

import (
	"fmt"
	"log/slog"
	"runtime"
)

func install(_ *slog.Logger) error {
	return fmt.Errorf("autostart install is not supported on %s", runtime.GOOS)
}

func uninstall(_ *slog.Logger) error {
	return fmt.Errorf("autostart uninstall is not supported on %s", runtime.GOOS)
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mifanbang/hidxpad/internal/config"
	"github.com/mifanbang/hidxpad/internal/configpaths"
	"github.com/mifanbang/hidxpad/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("hidxpad-agent"),
		kong.Description(Description()),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	cli.Device.Apply()

	cli.Run.NoDisableRawInput = cli.NoDisableRawInput
	cli.Run.Tray = cli.Tray
	if cli.Tray {
		wireTray(&cli, logger)
	}

	ctx.Bind(logger)
	if err := ctx.Run(); err != nil {
		if cli.Tray {
			showFatalDialog("hidxpad-agent", err.Error())
		}
		ctx.FatalIfErrorf(err)
	}
}

// wireTray hooks the run command's periodic status callback to drive a
// tray icon on its own goroutine; the icon's Quit menu item signals the
// run command's context the same way Ctrl+C does.
func wireTray(cli *config.CLI, logger *slog.Logger) {
	connected := make(chan bool, 1)
	cli.Run.StatusFunc = func(c bool) {
		select {
		case connected <- c:
		default:
			<-connected
			connected <- c
		}
	}

	lastConnected := false
	go runTray(logger, func() bool {
		select {
		case lastConnected = <-connected:
		default:
		}
		return lastConnected
	}, func() {
		p, err := os.FindProcess(os.Getpid())
		if err == nil {
			_ = p.Signal(os.Interrupt)
		}
	})
}

func findUserConfig(args []string) string {
	for i, a := range args {
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("HIDXPAD_CONFIG")
}

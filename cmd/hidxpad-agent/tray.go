package main

import (
	"log/slog"
	"time"

	"fyne.io/systray"
	"github.com/ncruces/zenity"
)

// runTray blocks running the system tray icon until the process exits.
// It is started on its own goroutine by main when --tray is set; the
// menu's Quit item raises SIGINT so the same shutdown path the
// foreground run command uses is taken.
func runTray(logger *slog.Logger, onConnected func() bool, quit func()) {
	systray.Run(func() {
		systray.SetTitle("hidxpad-agent")
		systray.SetTooltip("Switch Pro controller bridge: starting")

		status := systray.AddMenuItem("Controller: unknown", "")
		status.Disable()
		systray.AddSeparator()
		quitItem := systray.AddMenuItem("Quit", "Stop hidxpad-agent")

		go func() {
			for range quitItem.ClickedCh {
				quit()
				return
			}
		}()

		go pollTrayStatus(status, onConnected)
	}, func() {
		logger.Info("tray icon exiting")
	})
}

func pollTrayStatus(status *systray.MenuItem, onConnected func() bool) {
	for {
		if onConnected() {
			status.SetTitle("Controller: connected")
		} else {
			status.SetTitle("Controller: disconnected")
		}
		time.Sleep(time.Second)
	}
}

// showFatalDialog surfaces a startup failure with a native error dialog
// in addition to the structured log line, since a --tray run has no
// attached console for most users to see stderr.
func showFatalDialog(title, message string) {
	_ = zenity.Error(message, zenity.Title(title))
}

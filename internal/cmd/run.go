package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/mifanbang/hidxpad/device/switchpro"
	"github.com/mifanbang/hidxpad/hostenv"
	"github.com/mifanbang/hidxpad/xinput"
)

// Run starts the controller agent in the foreground and blocks until
// interrupted.
type Run struct {
	NoDisableRawInput bool `kong:"-"`
	Tray              bool `kong:"-"`

	// StatusFunc, when set, is called on every tray/status tick with the
	// agent's current connection state. Wired by cmd/hidxpad-agent when
	// --tray is set; nil otherwise.
	StatusFunc func(connected bool) `kong:"-"`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger) error {
	if !r.NoDisableRawInput {
		if err := hostenv.DisableRawInputJoystick(); err != nil {
			logger.Warn("failed to deregister raw input joystick", "err", err)
		}
	}

	agent := switchpro.NewAgent(logger)
	defer agent.Close()

	api := xinput.NewAPI(agent)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("hidxpad-agent running, waiting for controller")

	if r.StatusFunc != nil {
		go r.reportStatus(ctx, agent)
	}
	if !r.Tray && term.IsTerminal(int(os.Stdout.Fd())) {
		go printLiveState(ctx, api)
	}

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// printLiveState writes a single updating status line to the terminal,
// truncated to the terminal's current width so it never wraps.
func printLiveState(ctx context.Context, api *xinput.API) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var state xinput.State
			code := api.GetState(0, &state)

			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				width = 80
			}

			line := fmt.Sprintf("\rpacket=%d buttons=%04X LX=%6d LY=%6d RX=%6d RY=%6d code=%d",
				state.PacketNumber, state.Gamepad.Buttons,
				state.Gamepad.ThumbLX, state.Gamepad.ThumbLY,
				state.Gamepad.ThumbRX, state.Gamepad.ThumbRY, code)
			if len(line) > width {
				line = line[:width]
			}
			fmt.Fprint(os.Stdout, line)
		}
	}
}

func (r *Run) reportStatus(ctx context.Context, agent *switchpro.Agent) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.StatusFunc(agent.IsDeviceValid())
		}
	}
}

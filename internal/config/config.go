// Package config defines the CLI structure and configuration for the
// hidxpad-agent binary.
package config

import (
	"time"

	"github.com/mifanbang/hidxpad/device/switchpro"
	"github.com/mifanbang/hidxpad/internal/cmd"
)

// Log controls the structured logger.
type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"HIDXPAD_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"HIDXPAD_LOG_FILE"`
}

// Device overrides the vendor protocol's built-in timing and identity
// constants. Left at their defaults, they match what the firmware
// actually expects.
type Device struct {
	VendorID            uint16        `help:"Override the USB vendor ID to look for" default:"0x057E" env:"HIDXPAD_VENDOR_ID"`
	ProductID           uint16        `help:"Override the USB product ID to look for" default:"0x2009" env:"HIDXPAD_PRODUCT_ID"`
	TickInterval        time.Duration `help:"Worker poll interval" default:"15ms" env:"HIDXPAD_TICK_INTERVAL"`
	PacketTimeout       time.Duration `help:"How long a cached state stays fresh without a new packet" default:"100ms" env:"HIDXPAD_PACKET_TIMEOUT"`
	CommandReplyTimeout time.Duration `help:"How long to wait for a handshake command reply" default:"400ms" env:"HIDXPAD_COMMAND_REPLY_TIMEOUT"`
}

// Apply overrides the package-level tuning constants used by the
// protocol and agent packages. It must be called before the agent is
// constructed.
func (d Device) Apply() {
	if d.VendorID != 0 {
		switchpro.VendorID = d.VendorID
	}
	if d.ProductID != 0 {
		switchpro.ProductID = d.ProductID
	}
	if d.TickInterval > 0 {
		switchpro.TickInterval = d.TickInterval
	}
	if d.PacketTimeout > 0 {
		switchpro.PacketTimeout = d.PacketTimeout
	}
	if d.CommandReplyTimeout > 0 {
		switchpro.CommandReplyTimeout = d.CommandReplyTimeout
	}
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Device `embed:"" prefix:"device."`

	Config string `help:"Path to a JSON, YAML or TOML config file" name:"config" env:"HIDXPAD_CONFIG"`

	NoDisableRawInput bool `help:"Do not deregister the controller from Windows raw input" name:"no-disable-raw-input"`
	Tray              bool `help:"Show a system tray icon reflecting connection status" name:"tray"`

	Run       cmd.Run       `cmd:"" help:"Run the controller agent in the foreground"`
	Install   cmd.Install   `cmd:"" help:"Install the agent to start automatically on login"`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the agent from autostart"`
}

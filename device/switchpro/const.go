// Package switchpro implements the vendor protocol, translation layer,
// and polling agent for a Nintendo Switch Pro controller connected as a
// generic USB HID device.
package switchpro

import "time"

// USB identity of the Nintendo Switch Pro controller. Declared as vars,
// not consts, so a deployment can target a compatible clone by
// overriding them before the first Locate call.
var (
	VendorID  uint16 = 0x057E
	ProductID uint16 = 0x2009
)

// Packet framing. Every transfer to or from the device is exactly this
// many bytes; shorter transfers are discarded by the codec.
const PacketSize = 64

// ReadBufferSize is deliberately twice PacketSize: the OS HID stack may
// coalesce more than one 64-byte report into a single read, and the
// codec's Iterate plus last-packet-wins selection rule depends on being
// able to see more than one packet per read.
const ReadBufferSize = 2 * PacketSize

// WriteBufferSize is exactly one packet; host-to-device packets are
// never coalesced.
const WriteBufferSize = PacketSize

// Timing. CommandReplyTimeout bounds how long the protocol driver waits
// for a command, subcommand, or full-states reply during handshake and
// reattach probing. PacketTimeout is the much shorter staleness bound
// used once streaming is established: no full-states packet within this
// window means the device has gone silent. TickInterval is the worker
// loop's poll cadence.
var (
	CommandReplyTimeout = 400 * time.Millisecond
	PacketTimeout       = 100 * time.Millisecond
	TickInterval        = 15 * time.Millisecond
)

// PacketType tags the first byte of every 64-byte frame.
type PacketType uint8

const (
	TypeRumbleAndSubcommand PacketType = 0x01
	TypeRumble              PacketType = 0x10
	TypeCommand             PacketType = 0x80
	TypeSubcommandReply     PacketType = 0x21
	TypeFullStates          PacketType = 0x30
	TypeCommandReply        PacketType = 0x81
)

// Host command codes, sent as the body of a TypeCommand packet.
const (
	CommandHandShake   uint8 = 0x02
	CommandSetHighSpeed uint8 = 0x03
	CommandForceUSB    uint8 = 0x04
)

// Host subcommand codes, sent as the subcmd field of a
// TypeRumbleAndSubcommand packet.
const (
	SubcommandSetPlayerLights  uint8 = 0x30
	SubcommandSetIMUSensitivity uint8 = 0x41
)

// Button bit indices within the 24-bit keys field of CommonStates.
const (
	ButtonY = 0
	ButtonX = 1
	ButtonB = 2
	ButtonA = 3
	ButtonR = 6
	ButtonZR = 7
	ButtonMinus = 8
	ButtonPlus = 9
	ButtonTriggerR = 10
	ButtonTriggerL = 11
	ButtonHome = 12
	ButtonShare = 13
	ButtonDown = 16
	ButtonUp = 17
	ButtonRight = 18
	ButtonLeft = 19
	ButtonL = 22
	ButtonZL = 23
)

// rumbleNeutral is the inert rumble payload sent alongside every
// subcommand; rumble output itself is not implemented.
var rumbleNeutral = [4]byte{0x00, 0x01, 0x40, 0x40}

// axisCalibration holds the fixed three-point remap table for one stick
// axis. A single shared table is used for every device; per-device
// calibration is not implemented.
type axisCalibration struct {
	min, neutral, max uint16
}

var (
	calibLeftX  = axisCalibration{min: 0x220, neutral: 0x7E0, max: 0xE20}
	calibLeftY  = axisCalibration{min: 0x1B0, neutral: 0x7A0, max: 0xE20}
	calibRightX = axisCalibration{min: 0x230, neutral: 0x800, max: 0xE00}
	calibRightY = axisCalibration{min: 0x150, neutral: 0x770, max: 0xE20}
)

// playerOneLightsData is the subcommand data for lighting up the first
// player LED, sent as the final handshake step.
const playerOneLightsData uint32 = 1

// playerOneSerialID is the handshake's fixed serial id for the player
// lights subcommand.
const playerOneSerialID uint8 = 1

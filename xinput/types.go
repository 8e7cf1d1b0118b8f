// Package xinput re-creates the subset of the Win32 XInput API surface
// this agent serves: the gamepad/battery/capabilities structures, the
// button and error constants, and the API type that answers queries from
// a switchpro.Agent's cached state.
package xinput

// Gamepad mirrors XINPUT_GAMEPAD.
type Gamepad struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	ThumbLX      int16
	ThumbLY      int16
	ThumbRX      int16
	ThumbRY      int16
}

// State mirrors XINPUT_STATE.
type State struct {
	PacketNumber uint32
	Gamepad      Gamepad
}

// Vibration mirrors XINPUT_VIBRATION. Accepted by SetState but never
// acted on; rumble output is not implemented.
type Vibration struct {
	LeftMotorSpeed  uint16
	RightMotorSpeed uint16
}

// Capabilities mirrors XINPUT_CAPABILITIES.
type Capabilities struct {
	Type      uint8
	SubType   uint8
	Flags     uint16
	Gamepad   Gamepad
	Vibration Vibration
}

// BatteryInformation mirrors XINPUT_BATTERY_INFORMATION.
type BatteryInformation struct {
	BatteryType  uint8
	BatteryLevel uint8
}

// Keystroke mirrors XINPUT_KEYSTROKE. GetKeystroke always reports
// ERROR_EMPTY, so the fields here are never populated, but the type is
// kept for signature fidelity with the API it stands in for.
type Keystroke struct {
	VirtualKey uint16
	Unicode    uint16
	Flags      uint16
	UserIndex  uint8
	HidCode    uint8
}

// Gamepad button bitmasks (XINPUT_GAMEPAD_*).
const (
	GamepadDPadUp        uint16 = 0x0001
	GamepadDPadDown      uint16 = 0x0002
	GamepadDPadLeft      uint16 = 0x0004
	GamepadDPadRight     uint16 = 0x0008
	GamepadStart         uint16 = 0x0010
	GamepadBack          uint16 = 0x0020
	GamepadLeftThumb     uint16 = 0x0040
	GamepadRightThumb    uint16 = 0x0080
	GamepadLeftShoulder  uint16 = 0x0100
	GamepadRightShoulder uint16 = 0x0200
	GamepadA             uint16 = 0x1000
	GamepadB             uint16 = 0x2000
	GamepadX             uint16 = 0x4000
	GamepadY             uint16 = 0x8000
)

// Capabilities values read from a real Xbox One controller connected
// with a USB cable, matching the values this library has always
// advertised for the emulated device.
const (
	CapabilitiesButtonMask uint16 = 0xF3FF
	CapabilitiesTrigger    uint8  = 0xFF
	CapabilitiesThumbRange int16  = -0x0040 // 0xFFC0 as a signed 16-bit value
	CapabilitiesVibration  uint16 = 0xFF
)

// Device type/subtype (XINPUT_DEVTYPE_*, XINPUT_DEVSUBTYPE_*).
const (
	DevTypeGamepad    uint8 = 0x01
	DevSubTypeGamepad uint8 = 0x01
)

// Battery device type (BATTERY_DEVTYPE_*).
const (
	BatteryDevTypeGamepad uint8 = 0x00
	BatteryDevTypeHeadset uint8 = 0x01
)

// Battery type (BATTERY_TYPE_*).
const (
	BatteryTypeDisconnected uint8 = 0x00
	BatteryTypeWired        uint8 = 0x01
	BatteryTypeAlkaline     uint8 = 0x02
	BatteryTypeNiMH         uint8 = 0x03
	BatteryTypeUnknown      uint8 = 0xFF
)

// Battery level (BATTERY_LEVEL_*).
const (
	BatteryLevelEmpty  uint8 = 0x00
	BatteryLevelLow    uint8 = 0x01
	BatteryLevelMedium uint8 = 0x02
	BatteryLevelFull   uint8 = 0x03
)

// Win32 error codes this API returns.
const (
	ErrorSuccess             uint32 = 0
	ErrorDeviceNotConnected  uint32 = 1167
	ErrorEmpty               uint32 = 4306
)

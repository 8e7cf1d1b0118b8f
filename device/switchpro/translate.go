package switchpro

import (
	"math"

	"github.com/mifanbang/hidxpad/xinput"
)

// remapAxis maps a raw 12-bit stick value to a signed 16-bit XInput axis
// using a fixed three-point calibration. The positive and negative
// halves of the range scale independently since the neutral point is not
// generally centered between min and max.
func remapAxis(value uint16, cal axisCalibration) int16 {
	clamped := value
	if clamped < cal.min {
		clamped = cal.min
	}
	if clamped > cal.max {
		clamped = cal.max
	}

	signed := int32(clamped) - int32(cal.neutral)
	switch {
	case signed > 0:
		scaled := float64(signed) * 0x7FFF / float64(int32(cal.max)-int32(cal.neutral))
		return int16(math.Round(scaled))
	case signed < 0:
		scaled := float64(signed) * 0x8000 / float64(int32(cal.neutral)-int32(cal.min))
		return int16(math.Round(scaled))
	default:
		return 0
	}
}

// decodeBattery maps the high nibble of batteryAndWired to an XInput
// battery level. The low nibble's meaning is unspecified and ignored.
func decodeBattery(batteryAndWired uint8) uint8 {
	level := batteryAndWired >> 4
	switch {
	case level >= 7:
		return xinput.BatteryLevelFull
	case level >= 4:
		return xinput.BatteryLevelMedium
	case level >= 1:
		return xinput.BatteryLevelLow
	default:
		return xinput.BatteryLevelEmpty
	}
}

// Translate maps one decoded FullStates CommonStates block into XInput
// gamepad and battery structures.
func Translate(cs CommonStates) (xinput.State, xinput.BatteryInformation) {
	lx, ly := cs.LeftAxes()
	rx, ry := cs.RightAxes()

	var buttons uint16
	// Face buttons remap positionally, not by label: the Pro's diamond
	// is rotated one position relative to Xbox's.
	if cs.HasButton(ButtonY) {
		buttons |= xinput.GamepadX
	}
	if cs.HasButton(ButtonX) {
		buttons |= xinput.GamepadY
	}
	if cs.HasButton(ButtonB) {
		buttons |= xinput.GamepadA
	}
	if cs.HasButton(ButtonA) {
		buttons |= xinput.GamepadB
	}
	if cs.HasButton(ButtonR) {
		buttons |= xinput.GamepadRightShoulder
	}
	if cs.HasButton(ButtonL) {
		buttons |= xinput.GamepadLeftShoulder
	}
	if cs.HasButton(ButtonMinus) {
		buttons |= xinput.GamepadBack
	}
	if cs.HasButton(ButtonPlus) {
		buttons |= xinput.GamepadStart
	}
	if cs.HasButton(ButtonTriggerR) {
		buttons |= xinput.GamepadRightThumb
	}
	if cs.HasButton(ButtonTriggerL) {
		buttons |= xinput.GamepadLeftThumb
	}
	if cs.HasButton(ButtonDown) {
		buttons |= xinput.GamepadDPadDown
	}
	if cs.HasButton(ButtonUp) {
		buttons |= xinput.GamepadDPadUp
	}
	if cs.HasButton(ButtonRight) {
		buttons |= xinput.GamepadDPadRight
	}
	if cs.HasButton(ButtonLeft) {
		buttons |= xinput.GamepadDPadLeft
	}

	var leftTrigger, rightTrigger uint8
	if cs.HasButton(ButtonZL) {
		leftTrigger = 0xFF
	}
	if cs.HasButton(ButtonZR) {
		rightTrigger = 0xFF
	}

	state := xinput.State{
		PacketNumber: uint32(cs.Timestamp),
		Gamepad: xinput.Gamepad{
			Buttons:      buttons,
			LeftTrigger:  leftTrigger,
			RightTrigger: rightTrigger,
			ThumbLX:      remapAxis(lx, calibLeftX),
			ThumbLY:      remapAxis(ly, calibLeftY),
			ThumbRX:      remapAxis(rx, calibRightX),
			ThumbRY:      remapAxis(ry, calibRightY),
		},
	}

	battery := xinput.BatteryInformation{
		BatteryType:  xinput.BatteryTypeNiMH,
		BatteryLevel: decodeBattery(cs.BatteryAndWired),
	}

	return state, battery
}

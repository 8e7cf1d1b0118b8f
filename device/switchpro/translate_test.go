package switchpro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mifanbang/hidxpad/xinput"
)

func statesWithKeysAndSticks(keys uint32, leftAxisX, leftAxisY, rightAxisX, rightAxisY uint16, battery uint8) CommonStates {
	return CommonStates{
		BatteryAndWired: battery,
		Keys:            keys,
		LeftStick:       PackU24(leftAxisX, leftAxisY),
		RightStick:      PackU24(rightAxisX, rightAxisY),
	}
}

func TestTranslateNeutralSticksAPressed(t *testing.T) {
	cs := statesWithKeysAndSticks(1<<ButtonA, calibLeftX.neutral, calibLeftY.neutral, calibRightX.neutral, calibRightY.neutral, 0x80)

	state, battery := Translate(cs)

	assert.Equal(t, xinput.GamepadB, state.Gamepad.Buttons, "Pro's A maps positionally onto XInput B")
	assert.Zero(t, state.Gamepad.ThumbLX)
	assert.Zero(t, state.Gamepad.ThumbLY)
	assert.Zero(t, state.Gamepad.ThumbRX)
	assert.Zero(t, state.Gamepad.ThumbRY)
	assert.Zero(t, state.Gamepad.LeftTrigger)
	assert.Zero(t, state.Gamepad.RightTrigger)
	assert.Equal(t, xinput.BatteryLevelFull, battery.BatteryLevel)
	assert.Equal(t, xinput.BatteryTypeNiMH, battery.BatteryType)
}

func TestTranslateStickExtremes(t *testing.T) {
	cs := statesWithKeysAndSticks(0, calibLeftX.max, calibLeftY.min, calibRightX.neutral, calibRightY.neutral, 0)

	state, _ := Translate(cs)

	assert.InDelta(t, int16(0x7FFF), state.Gamepad.ThumbLX, 1)
	assert.InDelta(t, int16(-0x8000), state.Gamepad.ThumbLY, 1)
}

func TestRemapAxisEndpointsAndSign(t *testing.T) {
	cal := calibLeftX

	assert.Equal(t, int16(-0x8000), remapAxis(cal.min, cal))
	assert.Equal(t, int16(0), remapAxis(cal.neutral, cal))
	assert.InDelta(t, int16(0x7FFF), remapAxis(cal.max, cal), 1)

	for v := cal.min; v < cal.max; v += 37 {
		got := remapAxis(v, cal)
		switch {
		case v < cal.neutral:
			assert.LessOrEqual(t, got, int16(0))
		case v > cal.neutral:
			assert.GreaterOrEqual(t, got, int16(0))
		default:
			assert.Zero(t, got)
		}
	}
}

func TestRemapAxisMonotonic(t *testing.T) {
	cal := calibRightY
	prev := remapAxis(cal.min, cal)
	for v := cal.min + 1; v <= cal.max; v++ {
		got := remapAxis(v, cal)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestDecodeBatteryMonotonic(t *testing.T) {
	levelOf := func(b uint8) int {
		switch decodeBattery(b) {
		case xinput.BatteryLevelEmpty:
			return 0
		case xinput.BatteryLevelLow:
			return 1
		case xinput.BatteryLevelMedium:
			return 2
		case xinput.BatteryLevelFull:
			return 3
		}
		return -1
	}

	for b1 := 0; b1 < 256; b1++ {
		for b2 := b1; b2 < 256; b2++ {
			assert.LessOrEqual(t, levelOf(uint8(b1)), levelOf(uint8(b2)))
		}
	}
}

func TestDecodeBatteryThresholds(t *testing.T) {
	assert.Equal(t, xinput.BatteryLevelEmpty, decodeBattery(0x00))
	assert.Equal(t, xinput.BatteryLevelLow, decodeBattery(0x10))
	assert.Equal(t, xinput.BatteryLevelMedium, decodeBattery(0x40))
	assert.Equal(t, xinput.BatteryLevelFull, decodeBattery(0x70))
	assert.Equal(t, xinput.BatteryLevelFull, decodeBattery(0x80))
}

package xinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	valid   bool
	state   State
	fresh   bool
	battery BatteryInformation
	battFresh bool
	waited  int
}

func (f *fakeSource) GetState() (State, bool)              { return f.state, f.fresh }
func (f *fakeSource) GetBattery() (BatteryInformation, bool) { return f.battery, f.battFresh }
func (f *fakeSource) IsDeviceValid() bool                   { return f.valid }
func (f *fakeSource) WaitForFirstPull()                     { f.waited++ }

func TestGetStateDisconnectedReportsErrorDeviceNotConnected(t *testing.T) {
	src := &fakeSource{valid: false}
	api := NewAPI(src)

	var out State
	code := api.GetState(0, &out)
	assert.Equal(t, ErrorDeviceNotConnected, code)
}

func TestGetStateRejectsNonZeroUserIndex(t *testing.T) {
	src := &fakeSource{valid: true, fresh: true}
	api := NewAPI(src)

	var out State
	code := api.GetState(1, &out)
	assert.Equal(t, ErrorDeviceNotConnected, code)
}

func TestGetStateStaleCacheReturnsSuccessWithNeutralState(t *testing.T) {
	src := &fakeSource{
		valid: true,
		fresh: false,
		state: State{Gamepad: Gamepad{Buttons: GamepadA}},
	}
	api := NewAPI(src)

	var out State
	code := api.GetState(0, &out)

	require.Equal(t, ErrorSuccess, code, "a stale cache must still report success")
	assert.Zero(t, out, "a stale cache must report a zeroed neutral state")
	assert.Equal(t, 1, src.waited)
}

func TestGetStateFreshCacheReturnsActualState(t *testing.T) {
	want := State{PacketNumber: 7, Gamepad: Gamepad{Buttons: GamepadX}}
	src := &fakeSource{valid: true, fresh: true, state: want}
	api := NewAPI(src)

	var out State
	code := api.GetState(0, &out)

	require.Equal(t, ErrorSuccess, code)
	assert.Equal(t, want, out)
}

func TestGetCapabilitiesReportsFixedValues(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)

	var caps Capabilities
	code := api.GetCapabilities(0, 0, &caps)

	require.Equal(t, ErrorSuccess, code)
	assert.Equal(t, DevTypeGamepad, caps.Type)
	assert.Equal(t, CapabilitiesButtonMask, caps.Gamepad.Buttons)
	assert.Equal(t, CapabilitiesThumbRange, caps.Gamepad.ThumbLX)
}

func TestGetBatteryInformationStaleFallsBackToMediumNiMH(t *testing.T) {
	src := &fakeSource{valid: true, battFresh: false}
	api := NewAPI(src)

	var batt BatteryInformation
	code := api.GetBatteryInformation(0, BatteryDevTypeGamepad, &batt)

	require.Equal(t, ErrorSuccess, code)
	assert.Equal(t, BatteryTypeNiMH, batt.BatteryType)
	assert.Equal(t, BatteryLevelMedium, batt.BatteryLevel)
}

func TestGetBatteryInformationWrongDevTypeReportsNotConnected(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)

	var batt BatteryInformation
	code := api.GetBatteryInformation(0, BatteryDevTypeHeadset, &batt)
	assert.Equal(t, ErrorDeviceNotConnected, code)
}

func TestGetKeystrokeAlwaysEmptyWhenConnected(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)

	var ks Keystroke
	assert.Equal(t, ErrorEmpty, api.GetKeystroke(0, &ks))
}

func TestGetKeystrokeDisconnectedReportsNotConnected(t *testing.T) {
	src := &fakeSource{valid: false}
	api := NewAPI(src)

	var ks Keystroke
	assert.Equal(t, ErrorDeviceNotConnected, api.GetKeystroke(0, &ks))
}

func TestGetAudioDeviceIdsAlwaysReportsNotConnected(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)
	assert.Equal(t, ErrorDeviceNotConnected, api.GetAudioDeviceIds(0))
}

func TestGetDSoundAudioDeviceGuidsUnconditional(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)
	assert.Equal(t, ErrorDeviceNotConnected, api.GetDSoundAudioDeviceGuids(0))
}

func TestSetStateDiscardsVibration(t *testing.T) {
	src := &fakeSource{valid: true}
	api := NewAPI(src)
	assert.Equal(t, ErrorSuccess, api.SetState(0, &Vibration{LeftMotorSpeed: 0xFFFF}))
}

package xinput

// source is the subset of switchpro.Agent's behavior the API needs. It
// is declared here rather than imported to avoid a package cycle
// (switchpro imports xinput for its result types); *switchpro.Agent
// satisfies this interface structurally.
type source interface {
	GetState() (State, bool)
	GetBattery() (BatteryInformation, bool)
	IsDeviceValid() bool
	WaitForFirstPull()
}

// API answers the XInput entry points a host game calls, backed by a
// single controller agent. Only user index 0 is ever valid: multiple
// controllers are not supported.
type API struct {
	agent source
}

// NewAPI wraps an agent (typically *switchpro.Agent).
func NewAPI(agent source) *API {
	return &API{agent: agent}
}

// GetState mirrors XInputGetState. A disconnected device reports
// ERROR_DEVICE_NOT_CONNECTED; a connected but momentarily stale cache
// still reports success with a neutral, zeroed state, since some games
// stop polling entirely the first time they see a non-success code.
func (a *API) GetState(userIndex uint32, out *State) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 {
		return ErrorDeviceNotConnected
	}

	a.agent.WaitForFirstPull()

	state, fresh := a.agent.GetState()
	if fresh {
		*out = state
	} else {
		*out = State{}
	}
	return ErrorSuccess
}

// SetState mirrors XInputSetState. Vibration is accepted and discarded;
// rumble output is not implemented.
func (a *API) SetState(userIndex uint32, _ *Vibration) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 {
		return ErrorDeviceNotConnected
	}
	return ErrorSuccess
}

// GetCapabilities mirrors XInputGetCapabilities, reporting the fixed
// values read from a real Xbox One controller connected over USB.
func (a *API) GetCapabilities(userIndex uint32, _ uint32, out *Capabilities) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 {
		return ErrorDeviceNotConnected
	}

	*out = Capabilities{
		Type:    DevTypeGamepad,
		SubType: DevSubTypeGamepad,
		Flags:   0,
		Gamepad: Gamepad{
			Buttons:      CapabilitiesButtonMask,
			LeftTrigger:  CapabilitiesTrigger,
			RightTrigger: CapabilitiesTrigger,
			ThumbLX:      CapabilitiesThumbRange,
			ThumbLY:      CapabilitiesThumbRange,
			ThumbRX:      CapabilitiesThumbRange,
			ThumbRY:      CapabilitiesThumbRange,
		},
		Vibration: Vibration{
			LeftMotorSpeed:  CapabilitiesVibration,
			RightMotorSpeed: CapabilitiesVibration,
		},
	}
	return ErrorSuccess
}

// GetBatteryInformation mirrors XInputGetBatteryInformation, with the
// same staleness fallback as GetState: a stale or not-yet-observed cache
// reports NiMH/Medium rather than surfacing any error.
func (a *API) GetBatteryInformation(userIndex uint32, devType uint8, out *BatteryInformation) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 || devType != BatteryDevTypeGamepad {
		return ErrorDeviceNotConnected
	}

	a.agent.WaitForFirstPull()

	battery, fresh := a.agent.GetBattery()
	if fresh {
		*out = battery
	} else {
		*out = BatteryInformation{BatteryType: BatteryTypeNiMH, BatteryLevel: BatteryLevelMedium}
	}
	return ErrorSuccess
}

// GetKeystroke mirrors XInputGetKeystroke. The keystroke surface is not
// supported; a connected device unconditionally reports ERROR_EMPTY.
func (a *API) GetKeystroke(userIndex uint32, _ *Keystroke) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 {
		return ErrorDeviceNotConnected
	}
	return ErrorEmpty
}

// GetAudioDeviceIds mirrors XInputGetAudioDeviceIds. The Pro controller
// has no audio endpoints; a connected device still reports
// ERROR_DEVICE_NOT_CONNECTED for this specific query.
func (a *API) GetAudioDeviceIds(userIndex uint32) uint32 {
	if !a.agent.IsDeviceValid() || userIndex != 0 {
		return ErrorDeviceNotConnected
	}
	return ErrorDeviceNotConnected
}

// GetDSoundAudioDeviceGuids mirrors XInputGetDSoundAudioDeviceGuids,
// which unconditionally reports no device, without even checking
// whether a controller is attached.
func (a *API) GetDSoundAudioDeviceGuids(_ uint32) uint32 {
	return ErrorDeviceNotConnected
}

// Enable mirrors XInputEnable; it is a no-op since input is always
// delivered regardless of this flag.
func (a *API) Enable(_ bool) {}

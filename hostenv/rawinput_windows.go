//go:build windows

package hostenv

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	hidUsagePageGeneric       = 0x01
	hidUsageGenericJoystick   = 0x04
	ridevRemove         uint32 = 0x00000001
)

type rawInputDevice struct {
	usagePage uint16
	usage     uint16
	flags     uint32
	target    windows.Handle
}

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procRegisterRawInputDevices  = user32.NewProc("RegisterRawInputDevices")
)

// DisableRawInputJoystick unregisters raw input delivery for the HID
// generic joystick usage, the category the Pro controller's HID
// descriptor reports under. Windows treats any device still registered
// for raw input as claimed, which keeps XInput from seeing it; removing
// the registration is what lets the emulated XInput device take over.
//
// It has no effect once any window on the calling thread has already
// registered for that usage page/usage pair, and no effect at all on
// non-Windows builds.
func DisableRawInputJoystick() error {
	dev := rawInputDevice{
		usagePage: hidUsagePageGeneric,
		usage:     hidUsageGenericJoystick,
		flags:     ridevRemove,
		target:    0,
	}

	ret, _, err := procRegisterRawInputDevices.Call(
		uintptr(unsafe.Pointer(&dev)),
		1,
		unsafe.Sizeof(dev),
	)
	if ret == 0 {
		return err
	}
	return nil
}

//go:build !windows

package hostenv

// DisableRawInputJoystick is a no-op outside Windows; raw input
// arbitration between HID and XInput is a Windows-specific concern.
func DisableRawInputJoystick() error {
	return nil
}

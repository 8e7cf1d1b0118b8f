package switchpro

import (
	"errors"

	hid "github.com/sstallion/go-hid"
)

// ErrDeviceNotFound is returned by Locate when no matching HID interface
// is currently attached.
var ErrDeviceNotFound = errors.New("switchpro: device not found")

// Locate scans HID interfaces for the Pro controller's vendor and
// product ID and returns the OS device path of the first match. It is
// called at startup and on every reattach attempt.
func Locate() (string, error) {
	var path string
	err := hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		if path == "" {
			path = info.Path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", ErrDeviceNotFound
	}
	return path, nil
}

// Open opens the device at path for shared, bidirectional access.
func Open(path string) (*hid.Device, error) {
	return hid.OpenPath(path)
}

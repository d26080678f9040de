package platform

import "github.com/ubytes/appplatform/pkg/platform/driver"

type (
	// AcceleratorKey is the payload of OnAcceleratorKey. It is only valid for
	// the duration of the callback.
	AcceleratorKey = driver.AcceleratorKey
	KeyCode        = driver.KeyCode

	PermissionKind     = driver.PermissionKind
	PermissionResponse = driver.PermissionResponse

	FocusReason = driver.FocusReason
)

const (
	ResponseDefault = driver.ResponseDefault
	ResponseAllow   = driver.ResponseAllow
	ResponseDeny    = driver.ResponseDeny

	PermissionUnknown                    = driver.PermissionUnknown
	PermissionMicrophone                 = driver.PermissionMicrophone
	PermissionCamera                     = driver.PermissionCamera
	PermissionGeolocation                = driver.PermissionGeolocation
	PermissionNotifications              = driver.PermissionNotifications
	PermissionOtherSensors               = driver.PermissionOtherSensors
	PermissionClipboardRead              = driver.PermissionClipboardRead
	PermissionMultipleAutomaticDownloads = driver.PermissionMultipleAutomaticDownloads
	PermissionFileReadWrite              = driver.PermissionFileReadWrite
	PermissionAutoplay                   = driver.PermissionAutoplay
	PermissionLocalFonts                 = driver.PermissionLocalFonts
	PermissionMIDISysex                  = driver.PermissionMIDISysex
	PermissionWindowManagement           = driver.PermissionWindowManagement

	FocusProgrammatic = driver.FocusProgrammatic
	FocusTabNext      = driver.FocusTabNext
	FocusTabPrev      = driver.FocusTabPrev
)

// ParseAccelerator parses a chord such as "ctrl+shift+i".
func ParseAccelerator(s string) (AcceleratorKey, error) {
	return driver.ParseAccelerator(s)
}

// ParsePermissionKind parses the snake_case kind name.
func ParsePermissionKind(s string) (PermissionKind, error) {
	return driver.ParsePermissionKind(s)
}

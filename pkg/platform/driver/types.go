package driver

import (
	"fmt"
	"strings"
)

// PermissionKind is the capability hosted content asks for.
type PermissionKind int

const (
	PermissionUnknown PermissionKind = iota
	PermissionMicrophone
	PermissionCamera
	PermissionGeolocation
	PermissionNotifications
	PermissionOtherSensors
	PermissionClipboardRead
	PermissionMultipleAutomaticDownloads
	PermissionFileReadWrite
	PermissionAutoplay
	PermissionLocalFonts
	PermissionMIDISysex
	PermissionWindowManagement
)

var permissionKindNames = map[PermissionKind]string{
	PermissionUnknown:                    "unknown",
	PermissionMicrophone:                 "microphone",
	PermissionCamera:                     "camera",
	PermissionGeolocation:                "geolocation",
	PermissionNotifications:              "notifications",
	PermissionOtherSensors:               "other_sensors",
	PermissionClipboardRead:              "clipboard_read",
	PermissionMultipleAutomaticDownloads: "multiple_automatic_downloads",
	PermissionFileReadWrite:              "file_read_write",
	PermissionAutoplay:                   "autoplay",
	PermissionLocalFonts:                 "local_fonts",
	PermissionMIDISysex:                  "midi_sysex",
	PermissionWindowManagement:           "window_management",
}

// String returns the snake_case name used in logs and storage.
func (k PermissionKind) String() string {
	if name, ok := permissionKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("permission(%d)", int(k))
}

// ParsePermissionKind is the inverse of PermissionKind.String.
func ParsePermissionKind(s string) (PermissionKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range permissionKindNames {
		if name == s {
			return k, nil
		}
	}
	return PermissionUnknown, fmt.Errorf("unknown permission kind %q", s)
}

// PermissionResponse is the decision for a prompt.
type PermissionResponse int

const (
	ResponseDefault PermissionResponse = iota
	ResponseAllow
	ResponseDeny
)

func (r PermissionResponse) String() string {
	switch r {
	case ResponseAllow:
		return "allow"
	case ResponseDeny:
		return "deny"
	default:
		return "default"
	}
}

// KeyCode identifies a key using Windows virtual-key numbering. Letters and
// digits use their upper-case ASCII value.
type KeyCode uint32

const (
	KeyBackspace KeyCode = 0x08
	KeyTab       KeyCode = 0x09
	KeyEnter     KeyCode = 0x0D
	KeyEscape    KeyCode = 0x1B
	KeySpace     KeyCode = 0x20
	KeyPageUp    KeyCode = 0x21
	KeyPageDown  KeyCode = 0x22
	KeyEnd       KeyCode = 0x23
	KeyHome      KeyCode = 0x24
	KeyLeft      KeyCode = 0x25
	KeyUp        KeyCode = 0x26
	KeyRight     KeyCode = 0x27
	KeyDown      KeyCode = 0x28
	KeyDelete    KeyCode = 0x2E
	KeyF1        KeyCode = 0x70
	KeyF12       KeyCode = 0x7B
	KeyPlus      KeyCode = 0xBB
	KeyMinus     KeyCode = 0xBD
)

// AcceleratorKey describes a key chord.
type AcceleratorKey struct {
	KeyCode     KeyCode
	Ctrl        bool
	Shift       bool
	Alt         bool
	RepeatCount uint32
}

// Matches compares the chord, ignoring the repeat count.
func (k AcceleratorKey) Matches(other AcceleratorKey) bool {
	return k.KeyCode == other.KeyCode && k.Ctrl == other.Ctrl && k.Shift == other.Shift && k.Alt == other.Alt
}

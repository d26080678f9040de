package entity

// PermissionType is the capability hosted content asks for. Values match the
// names used by the platform layer and the config file.
type PermissionType string

const (
	PermissionTypeUnknown                    PermissionType = "unknown"
	PermissionTypeMicrophone                 PermissionType = "microphone"
	PermissionTypeCamera                     PermissionType = "camera"
	PermissionTypeGeolocation                PermissionType = "geolocation"
	PermissionTypeNotifications              PermissionType = "notifications"
	PermissionTypeOtherSensors               PermissionType = "other_sensors"
	PermissionTypeClipboardRead              PermissionType = "clipboard_read"
	PermissionTypeMultipleAutomaticDownloads PermissionType = "multiple_automatic_downloads"
	PermissionTypeFileReadWrite              PermissionType = "file_read_write"
	PermissionTypeAutoplay                   PermissionType = "autoplay"
	PermissionTypeLocalFonts                 PermissionType = "local_fonts"
	PermissionTypeMIDISysex                  PermissionType = "midi_sysex"
	PermissionTypeWindowManagement           PermissionType = "window_management"
)

// PermissionDecision represents the decision for a permission.
type PermissionDecision string

const (
	// PermissionGranted means the permission was allowed.
	PermissionGranted PermissionDecision = "granted"

	// PermissionDenied means the permission was denied.
	PermissionDenied PermissionDecision = "denied"

	// PermissionPrompt means no decision was made; the backend applies its default.
	PermissionPrompt PermissionDecision = "prompt"
)

// PermissionRecord stores a permission decision for a specific origin and type.
type PermissionRecord struct {
	Origin    string             // scheme://host[:port] of the requesting content
	Type      PermissionType     // The type of permission
	Decision  PermissionDecision // granted or denied; prompt is never stored
	UpdatedAt int64              // Unix timestamp in seconds when this record was last updated
}

// IsGranted returns true if the permission is granted.
func (p *PermissionRecord) IsGranted() bool {
	return p.Decision == PermissionGranted
}

// IsDenied returns true if the permission is denied.
func (p *PermissionRecord) IsDenied() bool {
	return p.Decision == PermissionDenied
}

// CanPersist reports whether decisions for permType may be stored.
func CanPersist(permType PermissionType) bool {
	switch permType {
	case PermissionTypeUnknown, "":
		return false
	case PermissionTypeAutoplay:
		return false // Auto-allowed, no need to persist
	default:
		return true
	}
}

// IsAutoAllow returns true if this permission type should be auto-allowed.
func IsAutoAllow(permType PermissionType) bool {
	return permType == PermissionTypeAutoplay
}

// CanStore reports whether decision is a final answer worth storing.
func (d PermissionDecision) CanStore() bool {
	return d == PermissionGranted || d == PermissionDenied
}

var knownPermissionTypes = []PermissionType{
	PermissionTypeMicrophone,
	PermissionTypeCamera,
	PermissionTypeGeolocation,
	PermissionTypeNotifications,
	PermissionTypeOtherSensors,
	PermissionTypeClipboardRead,
	PermissionTypeMultipleAutomaticDownloads,
	PermissionTypeFileReadWrite,
	PermissionTypeAutoplay,
	PermissionTypeLocalFonts,
	PermissionTypeMIDISysex,
	PermissionTypeWindowManagement,
}

// KnownPermissionTypes returns every type except PermissionTypeUnknown.
func KnownPermissionTypes() []PermissionType {
	return append([]PermissionType(nil), knownPermissionTypes...)
}

// ParsePermissionType maps a name such as "camera" to its type.
func ParsePermissionType(name string) (PermissionType, bool) {
	for _, t := range knownPermissionTypes {
		if string(t) == name {
			return t, true
		}
	}
	return PermissionTypeUnknown, false
}

package driver

import (
	"fmt"
	"strings"
)

var namedKeys = map[string]KeyCode{
	"backspace": KeyBackspace,
	"tab":       KeyTab,
	"enter":     KeyEnter,
	"escape":    KeyEscape,
	"space":     KeySpace,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
	"end":       KeyEnd,
	"home":      KeyHome,
	"left":      KeyLeft,
	"up":        KeyUp,
	"right":     KeyRight,
	"down":      KeyDown,
	"delete":    KeyDelete,
	"plus":      KeyPlus,
	"minus":     KeyMinus,
}

// KeyName returns the lower-case name used in chord strings.
func (c KeyCode) KeyName() string {
	switch {
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return strings.ToLower(string(rune(c)))
	case c >= KeyF1 && c <= KeyF12:
		return fmt.Sprintf("f%d", int(c-KeyF1)+1)
	}
	for name, code := range namedKeys {
		if code == c {
			return name
		}
	}
	return fmt.Sprintf("0x%02x", uint32(c))
}

// String renders the chord as "ctrl+shift+alt+key".
func (k AcceleratorKey) String() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "ctrl")
	}
	if k.Shift {
		parts = append(parts, "shift")
	}
	if k.Alt {
		parts = append(parts, "alt")
	}
	parts = append(parts, k.KeyCode.KeyName())
	return strings.Join(parts, "+")
}

// ParseAccelerator parses chords such as "ctrl+shift+i" or "alt+f4".
// Modifiers may appear in any order; exactly one key is required.
func ParseAccelerator(s string) (AcceleratorKey, error) {
	var key AcceleratorKey
	var haveKey bool

	for _, part := range strings.Split(strings.ToLower(strings.TrimSpace(s)), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "ctrl", "control", "cmdorctrl":
			key.Ctrl = true
			continue
		case "shift":
			key.Shift = true
			continue
		case "alt":
			key.Alt = true
			continue
		case "":
			return AcceleratorKey{}, fmt.Errorf("invalid accelerator %q: empty segment", s)
		}

		if haveKey {
			return AcceleratorKey{}, fmt.Errorf("invalid accelerator %q: more than one key", s)
		}
		code, err := parseKeyCode(part)
		if err != nil {
			return AcceleratorKey{}, fmt.Errorf("invalid accelerator %q: %w", s, err)
		}
		key.KeyCode = code
		haveKey = true
	}

	if !haveKey {
		return AcceleratorKey{}, fmt.Errorf("invalid accelerator %q: missing key", s)
	}
	return key, nil
}

func parseKeyCode(name string) (KeyCode, error) {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyCode(c - 'a' + 'A'), nil
		case c >= '0' && c <= '9':
			return KeyCode(c), nil
		}
	}
	if code, ok := namedKeys[name]; ok {
		return code, nil
	}
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && n >= 1 && n <= 12 && name == fmt.Sprintf("f%d", n) {
		return KeyF1 + KeyCode(n-1), nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

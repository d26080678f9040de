package webkitgtk

import "github.com/ubytes/appplatform/pkg/platform/driver"

// GDK keyvals for the named keys accelerators can use.
const (
	gdkKeyBackSpace = 0xff08
	gdkKeyTab       = 0xff09
	gdkKeyReturn    = 0xff0d
	gdkKeyEscape    = 0xff1b
	gdkKeyHome      = 0xff50
	gdkKeyLeft      = 0xff51
	gdkKeyUp        = 0xff52
	gdkKeyRight     = 0xff53
	gdkKeyDown      = 0xff54
	gdkKeyPageUp    = 0xff55
	gdkKeyPageDown  = 0xff56
	gdkKeyEnd       = 0xff57
	gdkKeyDelete    = 0xffff
	gdkKeyF1        = 0xffbe
	gdkKeyF12       = 0xffc9
	gdkKeyPlus      = 0x2b
	gdkKeyEqual     = 0x3d
	gdkKeyMinus     = 0x2d
	gdkKeySpace     = 0x20
	gdkKeyKPEnter   = 0xff8d
)

var gdkNamedKeys = map[uint]driver.KeyCode{
	gdkKeyBackSpace: driver.KeyBackspace,
	gdkKeyTab:       driver.KeyTab,
	gdkKeyReturn:    driver.KeyEnter,
	gdkKeyKPEnter:   driver.KeyEnter,
	gdkKeyEscape:    driver.KeyEscape,
	gdkKeySpace:     driver.KeySpace,
	gdkKeyHome:      driver.KeyHome,
	gdkKeyLeft:      driver.KeyLeft,
	gdkKeyUp:        driver.KeyUp,
	gdkKeyRight:     driver.KeyRight,
	gdkKeyDown:      driver.KeyDown,
	gdkKeyPageUp:    driver.KeyPageUp,
	gdkKeyPageDown:  driver.KeyPageDown,
	gdkKeyEnd:       driver.KeyEnd,
	gdkKeyDelete:    driver.KeyDelete,
	gdkKeyPlus:      driver.KeyPlus,
	gdkKeyEqual:     driver.KeyPlus,
	gdkKeyMinus:     driver.KeyMinus,
}

// keyCodeFromKeyval maps a GDK keyval to a virtual-key code. The second
// result is false for keys accelerators cannot name.
func keyCodeFromKeyval(keyval uint) (driver.KeyCode, bool) {
	switch {
	case keyval >= 'a' && keyval <= 'z':
		return driver.KeyCode(keyval - 'a' + 'A'), true
	case keyval >= 'A' && keyval <= 'Z', keyval >= '0' && keyval <= '9':
		return driver.KeyCode(keyval), true
	case keyval >= gdkKeyF1 && keyval <= gdkKeyF12:
		return driver.KeyF1 + driver.KeyCode(keyval-gdkKeyF1), true
	}
	code, ok := gdkNamedKeys[keyval]
	return code, ok
}

// repeatTracker counts auto-repeat presses of the held key.
type repeatTracker struct {
	keyval uint
	count  uint32
}

func (r *repeatTracker) press(keyval uint) uint32 {
	if r.keyval == keyval {
		r.count++
	} else {
		r.keyval = keyval
		r.count = 0
	}
	return r.count
}

func (r *repeatTracker) release(keyval uint) {
	if r.keyval == keyval {
		r.keyval = 0
		r.count = 0
	}
}

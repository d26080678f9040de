//go:build !webkit_cgo

package webkitgtk

import "github.com/ubytes/appplatform/pkg/platform/driver"

// Compiled reports whether the GTK driver is part of this binary.
const Compiled = false

// New reports driver.ErrUnavailable: the binary was built without the
// webkit_cgo tag.
func New() (driver.Driver, error) {
	return nil, driver.ErrUnavailable
}

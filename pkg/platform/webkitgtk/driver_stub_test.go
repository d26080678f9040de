//go:build !webkit_cgo

package webkitgtk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

func TestNewWithoutCgoIsUnavailable(t *testing.T) {
	drv, err := New()
	assert.Nil(t, drv)
	assert.ErrorIs(t, err, driver.ErrUnavailable)
}

package webkitgtk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ubytes/appplatform/pkg/core"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

func TestKeyCodeFromKeyval(t *testing.T) {
	tests := []struct {
		keyval uint
		want   driver.KeyCode
		ok     bool
	}{
		{'i', 'I', true},
		{'I', 'I', true},
		{'7', '7', true},
		{gdkKeyF1, driver.KeyF1, true},
		{gdkKeyF12, driver.KeyF12, true},
		{gdkKeyEqual, driver.KeyPlus, true},
		{gdkKeyKPEnter, driver.KeyEnter, true},
		{gdkKeyLeft, driver.KeyLeft, true},
		{0xffe1, 0, false}, // Shift_L
	}
	for _, tt := range tests {
		got, ok := keyCodeFromKeyval(tt.keyval)
		assert.Equal(t, tt.ok, ok, "keyval %#x", tt.keyval)
		if tt.ok {
			assert.Equal(t, tt.want, got, "keyval %#x", tt.keyval)
		}
	}
}

func TestRepeatTracker(t *testing.T) {
	var r repeatTracker
	assert.Equal(t, uint32(0), r.press('a'))
	assert.Equal(t, uint32(1), r.press('a'))
	assert.Equal(t, uint32(2), r.press('a'))
	assert.Equal(t, uint32(0), r.press('b'))
	r.release('b')
	assert.Equal(t, uint32(0), r.press('b'))
}

func TestDispatchScriptQuotesText(t *testing.T) {
	got := dispatchScript("say \"hi\"\n</script>")
	assert.Equal(t, `window.appplatform && window.appplatform.__dispatch("say \"hi\"\n\u003c/script\u003e");`, got)
}

func TestBridgeScriptNamesHandler(t *testing.T) {
	assert.Contains(t, bridgeScript, `messageHandlers["appplatform"]`)
}

func TestWindowCSS(t *testing.T) {
	css := windowCSS("appplatform-window-3", core.Color4fFromHex(0x336699FF))
	assert.Equal(t, "window.appplatform-window-3 { background-color: rgba(51, 102, 153, 1.000); }", css)
}

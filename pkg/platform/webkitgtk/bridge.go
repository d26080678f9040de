// Package webkitgtk is the GTK4 + WebKitGTK 6 backend. It is compiled with
// the webkit_cgo build tag; other builds get a stub whose New reports
// driver.ErrUnavailable.
package webkitgtk

import (
	"encoding/json"
	"fmt"

	"github.com/ubytes/appplatform/pkg/core"
)

// MessageHandlerName is the WebKit script message handler hosted content
// posts to.
const MessageHandlerName = "appplatform"

// bridgeScript runs at document start in the top frame. Content uses
// window.appplatform.postMessage and window.appplatform.onmessage.
var bridgeScript = fmt.Sprintf(`(function () {
  if (window.appplatform) { return; }
  var handler = window.webkit && window.webkit.messageHandlers && window.webkit.messageHandlers[%q];
  window.appplatform = {
    onmessage: null,
    postMessage: function (msg) {
      if (handler) { handler.postMessage(String(msg)); }
    },
    __dispatch: function (msg) {
      if (typeof this.onmessage === "function") { this.onmessage(msg); }
    }
  };
})();`, MessageHandlerName)

// dispatchScript builds the script delivering text to content. The text is
// embedded as a JSON string literal, which is also a valid JS literal.
func dispatchScript(text string) string {
	quoted, _ := json.Marshal(text)
	return fmt.Sprintf("window.appplatform && window.appplatform.__dispatch(%s);", quoted)
}

// windowCSS paints the window surface with color.
func windowCSS(class string, color core.Color4f) string {
	c := color.Bytes()
	return fmt.Sprintf("window.%s { background-color: rgba(%d, %d, %d, %.3f); }",
		class, c.R, c.G, c.B, color.A)
}

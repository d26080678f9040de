package headless

import (
	"fmt"

	"github.com/grafana/sobek"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// content runs a page script. The script sees a global "host" object:
//
//	host.location                          current URL
//	host.postMessage(text)                 send text to the application
//	host.onmessage = function(text) {}     receive application messages
//	host.requestPermission(kind, cb, user) ask for a capability; cb gets
//	                                       "allow", "deny" or "default"
type content struct {
	vm   *sobek.Runtime
	host *sobek.Object
	wv   *WebView
}

func loadContent(wv *WebView, script string) (*content, error) {
	c := &content{vm: sobek.New(), wv: wv}
	c.host = c.vm.NewObject()

	for name, value := range map[string]any{
		"location":          wv.url,
		"postMessage":       c.postMessage,
		"requestPermission": c.requestPermission,
	} {
		if err := c.host.Set(name, value); err != nil {
			return nil, fmt.Errorf("install host.%s: %w", name, err)
		}
	}
	if err := c.vm.Set("host", c.host); err != nil {
		return nil, fmt.Errorf("install host object: %w", err)
	}

	if _, err := c.vm.RunString(script); err != nil {
		return nil, fmt.Errorf("run content script: %w", err)
	}
	return c, nil
}

func (c *content) postMessage(call sobek.FunctionCall) sobek.Value {
	c.wv.EmitMessage(call.Argument(0).String())
	return sobek.Undefined()
}

func (c *content) requestPermission(call sobek.FunctionCall) sobek.Value {
	kind, err := driver.ParsePermissionKind(call.Argument(0).String())
	if err != nil {
		panic(c.vm.NewTypeError(err.Error()))
	}
	cb, _ := sobek.AssertFunction(call.Argument(1))
	userInitiated := call.Argument(2).ToBoolean()

	p := NewPrompt(kind, c.wv.url, userInitiated)
	p.onComplete = func(response driver.PermissionResponse) {
		if cb == nil || c.wv.content != c {
			return
		}
		if _, err := cb(sobek.Undefined(), c.vm.ToValue(response.String())); err != nil {
			c.wv.scriptErr = err
		}
	}
	c.wv.raise(p)
	return sobek.Undefined()
}

func (c *content) deliver(text string) error {
	fn, ok := sobek.AssertFunction(c.host.Get("onmessage"))
	if !ok {
		return nil
	}
	if _, err := fn(sobek.Undefined(), c.vm.ToValue(text)); err != nil {
		return fmt.Errorf("host.onmessage: %w", err)
	}
	return nil
}
